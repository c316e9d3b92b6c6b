package downloader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kkdai/youtube/v2"
)

const (
	minChunkSize     int64 = 256 * 1024      // 256KB keeps progress responsive on small files
	maxChunkSize     int64 = 2 * 1024 * 1024 // cap to avoid excessive requests on large files
	targetChunkCount int64 = 64
)

// Result describes one finished download.
type Result struct {
	Path  string
	Bytes int64
}

// Downloader fetches metadata and stream bytes through a YouTubeClient.
type Downloader struct {
	client  YouTubeClient
	printer *Printer
	opts    Options
}

// New returns a Downloader backed by the real platform client.
func New(opts Options, printer *Printer) *Downloader {
	return NewWithClient(newClient(opts), opts, printer)
}

// NewWithClient returns a Downloader over an arbitrary client.
func NewWithClient(client YouTubeClient, opts Options, printer *Printer) *Downloader {
	if printer == nil {
		printer = newPrinter(opts)
	}
	return &Downloader{client: client, printer: printer, opts: opts}
}

func (d *Downloader) Printer() *Printer {
	return d.printer
}

// Video fetches metadata for url. Each call queries the platform.
func (d *Downloader) Video(ctx context.Context, url string) (*youtube.Video, error) {
	d.printer.Log(LogDebug, "fetching metadata for "+url)
	video, err := d.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, classifyVideoError(fmt.Errorf("fetching metadata for %s: %w", url, err))
	}
	return video, nil
}

// ListStreams fetches url and classifies its formats.
func (d *Downloader) ListStreams(ctx context.Context, url string) (*youtube.Video, StreamSet, error) {
	video, err := d.Video(ctx, url)
	if err != nil {
		return nil, StreamSet{}, err
	}
	return video, ClassifyStreams(video), nil
}

// DownloadFormat writes format's bytes to dir/filename. An empty filename
// uses DefaultFilename. A failed transfer leaves the partial file behind.
func (d *Downloader) DownloadFormat(ctx context.Context, video *youtube.Video, format *youtube.Format, dir, filename, prefix string) (Result, error) {
	if filename == "" {
		filename = DefaultFilename(video, format)
	}
	outputPath := filepath.Join(dir, filename)
	result := Result{Path: outputPath}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result, wrapCategory(CategoryFilesystem, fmt.Errorf("creating output directory: %w", err))
	}

	d.adjustChunkSize(format.ContentLength)
	stream, size, err := d.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return result, classifyStreamError(fmt.Errorf("starting stream: %w", err))
	}
	defer stream.Close()
	if size <= 0 && format.ContentLength > 0 {
		size = format.ContentLength
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return result, wrapCategory(CategoryFilesystem, fmt.Errorf("opening output file: %w", err))
	}
	defer file.Close()

	var writer io.Writer = file
	var progress *progressWriter
	if !d.opts.Quiet {
		if prefix == "" {
			prefix = filename
		}
		progress = newProgressWriter(size, d.printer, prefix)
		writer = io.MultiWriter(file, progress)
	}

	written, err := copyWithContext(ctx, writer, stream)
	if err != nil {
		return result, wrapCategory(CategoryNetwork, fmt.Errorf("download failed: %w", err))
	}
	if progress != nil {
		progress.Finish()
	}
	if err := file.Close(); err != nil {
		return result, wrapCategory(CategoryFilesystem, fmt.Errorf("closing output file: %w", err))
	}

	result.Bytes = written
	return result, nil
}

// adjustChunkSize picks a smaller chunk size to keep progress updates
// frequent without spawning thousands of requests.
func (d *Downloader) adjustChunkSize(contentLength int64) {
	if contentLength <= 0 {
		return
	}
	chunk := contentLength / targetChunkCount
	if chunk < minChunkSize {
		chunk = minChunkSize
	} else if chunk > maxChunkSize {
		chunk = maxChunkSize
	}
	d.client.SetChunkSize(chunk)
}
