package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/lvcoi/ytdl-catalog/internal/downloader"
)

// StreamPicker lets the user choose an itag. Returning 0 keeps the default
// stream.
type StreamPicker func(video *youtube.Video, set downloader.StreamSet) (int, error)

// InteractiveConfig holds the positional arguments of a single-video run:
// video URL, stream identifier and output directory, each optional.
type InteractiveConfig struct {
	Args   []string
	Input  io.Reader
	Picker StreamPicker
}

func (c InteractiveConfig) arg(i int) (string, bool) {
	if i < len(c.Args) {
		return c.Args[i], true
	}
	return "", false
}

// RunInteractive downloads one stream of one video, prompting on Input for
// whatever the arguments leave out.
func RunInteractive(ctx context.Context, cfg InteractiveConfig, dl *downloader.Downloader) (downloader.Result, error) {
	printer := dl.Printer()
	in := cfg.Input
	if in == nil {
		in = os.Stdin
	}
	reader := bufio.NewReader(in)

	rawURL, ok := cfg.arg(0)
	if !ok {
		printer.Printf("Paste a link to a YouTube video: ")
		rawURL = readLine(reader)
	}
	videoURL, err := downloader.NormalizeWatchURL(rawURL)
	if err != nil {
		return downloader.Result{}, err
	}

	outputDir, ok := cfg.arg(2)
	if !ok {
		wd, err := os.Getwd()
		if err != nil {
			return downloader.Result{}, downloader.CategorizedError{Category: downloader.CategoryFilesystem, Err: err}
		}
		if outputDir, err = filepath.Abs(wd); err != nil {
			return downloader.Result{}, downloader.CategorizedError{Category: downloader.CategoryFilesystem, Err: err}
		}
	}

	video, set, err := dl.ListStreams(ctx, videoURL)
	if err != nil {
		return downloader.Result{}, err
	}

	identifier, ok := cfg.arg(1)
	if !ok {
		identifier = chooseStream(cfg.Picker, video, set, reader, printer)
	}

	format, err := downloader.SelectStream(video, identifier)
	if err != nil {
		return downloader.Result{}, err
	}
	result, err := dl.DownloadFormat(ctx, video, format, outputDir, "", printer.Prefix(1, 1, video.Title))
	if err != nil {
		return result, err
	}

	printer.Printf("Successfully downloaded stream %d of \"%s\" (%s) into %s\n", format.ItagNo, video.Title, videoURL, outputDir)
	return result, nil
}

// chooseStream runs the picker when one is set and falls back to the plain
// listing and prompt when it fails.
func chooseStream(picker StreamPicker, video *youtube.Video, set downloader.StreamSet, reader *bufio.Reader, printer *downloader.Printer) string {
	if picker != nil {
		itag, err := picker(video, set)
		if err == nil {
			if itag <= 0 {
				return ""
			}
			return strconv.Itoa(itag)
		}
		printer.Logf(downloader.LogWarn, "stream picker unavailable: %v", err)
	}

	PrintStreams(printer, set)
	printer.Printf("Which stream do you want to download? Enter its \"itag\": ")
	return readLine(reader)
}

// PrintStreams writes the grouped stream listing to stdout.
func PrintStreams(printer *downloader.Printer, set downloader.StreamSet) {
	for _, group := range set.Groups() {
		printer.Printf("%s\n", group.Kind)
		for _, s := range group.Streams {
			printer.Printf("\t%s\n", s)
		}
	}
}

func readLine(reader *bufio.Reader) string {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(line)
}
