// Package platform holds the operating-system specific glue.
package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// LinuxFileManagers are tried in order when xdg-open is missing or fails.
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// runCommand is swapped in tests.
var runCommand = func(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// revealCommands returns the candidate command lines for goos, in the order
// they should be attempted.
func revealCommands(goos, path string) [][]string {
	switch goos {
	case OSDarwin:
		return [][]string{{"open", "-R", path}}
	case OSWindows:
		return [][]string{{"explorer", "/select," + path}}
	case OSLinux:
		cmds := [][]string{{"xdg-open", filepath.Dir(path)}}
		for _, fm := range LinuxFileManagers {
			cmds = append(cmds, []string{fm, path})
		}
		return cmds
	default:
		return nil
	}
}

// RevealDirectory shows dir highlighted in the system file manager.
func RevealDirectory(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	cmds := revealCommands(runtime.GOOS, abs)
	if len(cmds) == 0 {
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	var errs []error
	for _, cmd := range cmds {
		err := runCommand(cmd[0], cmd[1:]...)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", cmd[0], err))
	}
	return fmt.Errorf("could not open file manager: %w", errors.Join(errs...))
}
