package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/lvcoi/ytdl-catalog/internal/downloader"
)

// Mode selects how each catalog video is fetched.
type Mode string

const (
	// ModeSingle downloads the lowest-resolution stream carrying audio and video.
	ModeSingle Mode = "single"
	// ModeSplit downloads separate video and audio streams and muxes them.
	ModeSplit Mode = "split"
)

func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case ModeSingle:
		return ModeSingle, nil
	case ModeSplit, "":
		return ModeSplit, nil
	default:
		return "", fmt.Errorf("invalid mode %q (expected single or split)", raw)
	}
}

// CatalogConfig drives one catalog run.
type CatalogConfig struct {
	InputPath  string
	OutputDir  string
	BaseURL    string
	Mode       Mode
	Container  string
	Quality    string
	FFmpegPath string
	FFmpegLog  string
	Reveal     bool
	Options    downloader.Options
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		InputPath: "input/catalog.html",
		OutputDir: ".",
		BaseURL:   "https://www.youtube.com",
		Mode:      ModeSplit,
		Container: "mp4",
		Reveal:    true,
		Options:   downloader.Options{LogLevel: "info"},
	}
}

// Validate reports every unusable setting as one parse error.
func (c CatalogConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.InputPath) == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Mode != ModeSingle && c.Mode != ModeSplit {
		errs = append(errs, fmt.Errorf("invalid mode %q", c.Mode))
	}
	if c.BaseURL != "" {
		if u, err := url.Parse(c.BaseURL); err != nil || !u.IsAbs() {
			errs = append(errs, fmt.Errorf("base URL %q must be absolute", c.BaseURL))
		}
	}
	if c.Options.Timeout < 0 {
		errs = append(errs, errors.New("timeout must not be negative"))
	}
	if _, err := downloader.ParseLogLevel(c.Options.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return downloader.CategorizedError{Category: downloader.CategoryParse, Err: errors.Join(errs...)}
}
