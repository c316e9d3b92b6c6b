package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/lvcoi/ytdl-catalog/internal/app"
	"github.com/lvcoi/ytdl-catalog/internal/downloader"
)

func main() {
	var opts downloader.Options
	var pick bool

	flag.BoolVar(&pick, "pick", false, "choose the stream in an interactive selector (terminal only)")
	flag.DurationVar(&opts.Timeout, "timeout", 0, "per-request timeout (0 = none)")
	flag.BoolVar(&opts.Quiet, "quiet", false, "suppress progress output (errors still shown)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [options] [video_url] [stream_identifier] [output_directory]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if _, err := downloader.ParseLogLevel(opts.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	cfg := app.InteractiveConfig{Args: flag.Args(), Input: os.Stdin}
	if pick && downloader.IsTerminal(os.Stdin) && downloader.IsTerminal(os.Stderr) {
		cfg.Picker = downloader.RunStreamSelector
	}

	dl := downloader.New(opts, nil)
	defer downloader.CloseIdleConnections()

	if _, err := app.RunInteractive(context.Background(), cfg, dl); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		downloader.CloseIdleConnections()
		os.Exit(downloader.ExitCode(err))
	}
}
