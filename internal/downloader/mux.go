package downloader

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// localFFmpeg is the binary looked for next to the working directory before
// falling back to PATH.
const localFFmpeg = "./ffmpeg"

// Muxer joins a video-only and an audio-only file into one container.
type Muxer interface {
	Merge(ctx context.Context, videoPath, audioPath, outputPath string) error
}

// FFmpegMuxer muxes with ffmpeg using stream copy. It never overwrites an
// existing output file.
type FFmpegMuxer struct {
	Path   string
	Output io.Writer
}

// NewFFmpegMuxer returns a muxer for the ffmpeg binary at path. A nil output
// discards everything ffmpeg prints.
func NewFFmpegMuxer(path string, output io.Writer) *FFmpegMuxer {
	if path == "" {
		path = ResolveFFmpegPath("")
	}
	if output == nil {
		output = io.Discard
	}
	return &FFmpegMuxer{Path: path, Output: output}
}

// ResolveFFmpegPath returns configured when set, ./ffmpeg when it exists,
// and "ffmpeg" (looked up in PATH at run time) otherwise.
func ResolveFFmpegPath(configured string) string {
	if configured != "" {
		return configured
	}
	if info, err := os.Stat(localFFmpeg); err == nil && !info.IsDir() {
		return localFFmpeg
	}
	return "ffmpeg"
}

// Available reports whether the ffmpeg binary can be executed.
func (m *FFmpegMuxer) Available() bool {
	_, err := exec.LookPath(m.Path)
	return err == nil
}

func (m *FFmpegMuxer) stream(videoPath, audioPath, outputPath string) *ffmpeg.Stream {
	inputs := []*ffmpeg.Stream{ffmpeg.Input(videoPath), ffmpeg.Input(audioPath)}
	return ffmpeg.Output(inputs, outputPath, ffmpeg.KwArgs{"c": "copy"}).
		GlobalArgs("-n").
		SetFfmpegPath(m.Path).
		Silent(true).
		WithOutput(m.Output, m.Output)
}

// Args returns the ffmpeg command line Merge would run, without the binary.
func (m *FFmpegMuxer) Args(videoPath, audioPath, outputPath string) []string {
	return m.stream(videoPath, audioPath, outputPath).GetArgs()
}

// Merge runs ffmpeg. A non-zero exit status is reported as a mux error.
func (m *FFmpegMuxer) Merge(ctx context.Context, videoPath, audioPath, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.stream(videoPath, audioPath, outputPath).Run(); err != nil {
		return wrapCategory(CategoryMux, fmt.Errorf("ffmpeg merge into %s failed: %w", filepath.Base(outputPath), err))
	}
	return nil
}

var _ Muxer = (*FFmpegMuxer)(nil)
