package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/lvcoi/ytdl-catalog/internal/catalog"
	"github.com/lvcoi/ytdl-catalog/internal/downloader"
)

// Summary counts what a catalog run did.
type Summary struct {
	Found      int
	Pending    int
	Downloaded int
	Present    int
	Skipped    int
	Paths      []string
}

// RevealFunc shows a directory to the user.
type RevealFunc func(dir string) error

// RunCatalog scrapes cfg.InputPath, downloads every title missing from
// cfg.OutputDir in document order and reveals the directory. Videos without
// a matching stream, that the platform refuses, or whose output file already
// exists are skipped; any other error stops the run.
func RunCatalog(ctx context.Context, cfg CatalogConfig, dl *downloader.Downloader, muxer downloader.Muxer, reveal RevealFunc) (Summary, error) {
	var summary Summary
	if err := cfg.Validate(); err != nil {
		return summary, err
	}
	printer := dl.Printer()

	refs, err := catalog.ScrapeFile(cfg.InputPath)
	if err != nil {
		return summary, err
	}
	summary.Found = len(refs)

	pending, err := catalog.Filter(refs, cfg.OutputDir)
	if err != nil {
		return summary, err
	}
	summary.Pending = len(pending)
	printer.Logf(downloader.LogInfo, "%d videos in catalog, %d not yet in %s", len(refs), len(pending), cfg.OutputDir)

	for i, ref := range pending {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		printer.Printf("Downloading %s (%d of %d)\n", ref.Title, i+1, len(pending))

		result, err := downloadReference(ctx, cfg, dl, muxer, ref, printer.Prefix(i+1, len(pending), ref.Title))
		if err != nil {
			if errors.Is(err, downloader.ErrOutputExists) {
				printer.Printf("%v, skipping video...\n", err)
				summary.Present++
				continue
			}
			if skippable(err) {
				printer.Printf("%v, skipping video...\n", err)
				summary.Skipped++
				continue
			}
			return summary, err
		}
		summary.Downloaded++
		summary.Paths = append(summary.Paths, result.Path)
	}

	printer.Printf("Download finished, opening output path in file manager\n")
	if cfg.Reveal && reveal != nil {
		if err := reveal(cfg.OutputDir); err != nil {
			printer.Logf(downloader.LogWarn, "could not reveal %s: %v", cfg.OutputDir, err)
		}
	}
	return summary, nil
}

// skippable also covers links that do not resolve to a URL.
func skippable(err error) bool {
	return downloader.IsSkippable(err) || downloader.CategoryOf(err) == downloader.CategoryInvalidURL
}

func downloadReference(ctx context.Context, cfg CatalogConfig, dl *downloader.Downloader, muxer downloader.Muxer, ref catalog.VideoReference, prefix string) (downloader.Result, error) {
	link, err := downloader.ResolveLink(cfg.BaseURL, ref.Link)
	if err != nil {
		return downloader.Result{}, err
	}
	video, err := dl.Video(ctx, link)
	if err != nil {
		return downloader.Result{}, err
	}

	switch cfg.Mode {
	case ModeSingle:
		format, err := downloader.SelectProgressive(video)
		if err != nil {
			return downloader.Result{}, err
		}
		if err := downloader.CheckOutputFree(filepath.Join(cfg.OutputDir, downloader.DefaultFilename(video, format))); err != nil {
			return downloader.Result{}, err
		}
		return dl.DownloadFormat(ctx, video, format, cfg.OutputDir, "", prefix)
	case ModeSplit:
		videoFormat, audioFormat, err := downloader.SelectSplit(video, cfg.Container, cfg.Quality)
		if err != nil {
			return downloader.Result{}, err
		}
		return dl.DownloadSplit(ctx, video, videoFormat, audioFormat, cfg.OutputDir, muxer, prefix)
	default:
		return downloader.Result{}, fmt.Errorf("unsupported mode %q", cfg.Mode)
	}
}
