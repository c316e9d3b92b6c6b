package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/lvcoi/ytdl-catalog/internal/downloader"
)

var (
	titleReplacer    = strings.NewReplacer("|", "", "'", "", ":", "", ",", "", ".", "")
	filenameReplacer = strings.NewReplacer(".mp4", "", " - YouTube", "")
)

// NormalizeTitle strips the punctuation that never survives into a saved
// filename.
func NormalizeTitle(title string) string {
	return titleReplacer.Replace(title)
}

// NormalizeFilename strips the extension and the browser's page suffix from
// a directory entry.
func NormalizeFilename(name string) string {
	return filenameReplacer.Replace(name)
}

// ExistingFiles holds the normalized names found in an output directory.
type ExistingFiles map[string]struct{}

// Contains reports whether title matches an existing file.
func (e ExistingFiles) Contains(title string) bool {
	_, ok := e[NormalizeTitle(title)]
	return ok
}

// ScanExisting lists dir once. A missing directory is treated as empty.
func ScanExisting(dir string) (ExistingFiles, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return ExistingFiles{}, nil
		}
		return nil, downloader.CategorizedError{
			Category: downloader.CategoryFilesystem,
			Err:      fmt.Errorf("listing output directory: %w", err),
		}
	}
	existing := make(ExistingFiles, len(entries))
	for _, entry := range entries {
		existing[NormalizeFilename(entry.Name())] = struct{}{}
	}
	return existing, nil
}

// NewTitles keeps the references whose normalized title has no counterpart
// in existing, preserving order.
func NewTitles(refs []VideoReference, existing ExistingFiles) []VideoReference {
	out := make([]VideoReference, 0, len(refs))
	for _, ref := range refs {
		if existing.Contains(ref.Title) {
			continue
		}
		out = append(out, ref)
	}
	return out
}

// Filter scans dir and returns the references still missing from it.
func Filter(refs []VideoReference, dir string) ([]VideoReference, error) {
	existing, err := ScanExisting(dir)
	if err != nil {
		return nil, err
	}
	return NewTitles(refs, existing), nil
}
