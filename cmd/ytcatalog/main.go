// Command ytcatalog downloads every video of a saved channel or playlist page
// that is not yet present in the output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lvcoi/ytdl-catalog/internal/app"
	"github.com/lvcoi/ytdl-catalog/internal/downloader"
	"github.com/lvcoi/ytdl-catalog/internal/platform"
)

func main() {
	cfg := app.DefaultCatalogConfig()
	var mode string

	flag.StringVar(&cfg.InputPath, "input", cfg.InputPath, "saved HTML page listing the videos")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "directory the videos are saved to")
	flag.StringVar(&mode, "mode", string(cfg.Mode), "download mode: single (progressive stream) or split (video+audio muxed by ffmpeg)")
	flag.StringVar(&cfg.Container, "container", cfg.Container, "container for split streams (empty = any)")
	flag.StringVar(&cfg.Quality, "quality", cfg.Quality, "exact video quality label for split mode (e.g. 240p)")
	flag.StringVar(&cfg.FFmpegPath, "ffmpeg", cfg.FFmpegPath, "ffmpeg binary (default ./ffmpeg if present, else PATH)")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL for relative links in the page")
	flag.BoolVar(&cfg.Reveal, "reveal", cfg.Reveal, "open the output directory in the file manager when done")
	flag.StringVar(&cfg.FFmpegLog, "ffmpeg-log", cfg.FFmpegLog, "where ffmpeg output goes: empty discards, - for stderr, otherwise a file")
	flag.DurationVar(&cfg.Options.Timeout, "timeout", 0, "per-request timeout (0 = none)")
	flag.BoolVar(&cfg.Options.Quiet, "quiet", false, "suppress progress output (errors still shown)")
	flag.StringVar(&cfg.Options.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	parsed, err := app.ParseMode(mode)
	if err != nil {
		exit(downloader.CategorizedError{Category: downloader.CategoryParse, Err: err})
	}
	cfg.Mode = parsed
	if err := cfg.Validate(); err != nil {
		exit(err)
	}

	sink, closeSink, err := ffmpegSink(cfg.FFmpegLog)
	if err != nil {
		exit(err)
	}
	defer closeSink()

	dl := downloader.New(cfg.Options, nil)
	defer downloader.CloseIdleConnections()

	muxer := downloader.NewFFmpegMuxer(downloader.ResolveFFmpegPath(cfg.FFmpegPath), sink)
	if cfg.Mode == app.ModeSplit && !muxer.Available() {
		dl.Printer().Logf(downloader.LogWarn, "ffmpeg not found at %q; split downloads will fail", muxer.Path)
	}

	if _, err := app.RunCatalog(context.Background(), cfg, dl, muxer, platform.RevealDirectory); err != nil {
		closeSink()
		exit(err)
	}
}

func exit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(downloader.ExitCode(err))
}

func ffmpegSink(target string) (io.Writer, func(), error) {
	switch target {
	case "":
		return io.Discard, func() {}, nil
	case "-":
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, downloader.CategorizedError{Category: downloader.CategoryFilesystem, Err: fmt.Errorf("opening ffmpeg log: %w", err)}
	}
	return f, func() { _ = f.Close() }, nil
}
