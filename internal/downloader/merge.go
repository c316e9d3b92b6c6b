package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kkdai/youtube/v2"
)

const (
	videoTempPrefix = "video_"
	audioTempPrefix = "audio_"
)

// ErrOutputExists reports that the destination file is already on disk.
var ErrOutputExists = errors.New("output file already exists")

// CheckOutputFree returns a filesystem error wrapping ErrOutputExists when
// path is already taken.
func CheckOutputFree(path string) error {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return wrapCategory(CategoryFilesystem, fmt.Errorf("%w: %s", ErrOutputExists, path))
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return wrapCategory(CategoryFilesystem, fmt.Errorf("checking output file: %w", err))
	}
}

// DownloadSplit downloads videoFormat and audioFormat under temporary names
// in dir, muxes them into the video stream's default filename and removes
// the temporaries. Nothing is fetched when the final file already exists. On
// failure the temporaries are left in place.
func (d *Downloader) DownloadSplit(ctx context.Context, video *youtube.Video, videoFormat, audioFormat *youtube.Format, dir string, muxer Muxer, prefix string) (Result, error) {
	finalName := DefaultFilename(video, videoFormat)
	outputPath := filepath.Join(dir, finalName)
	result := Result{Path: outputPath}
	if err := CheckOutputFree(outputPath); err != nil {
		return result, err
	}

	videoResult, err := d.DownloadFormat(ctx, video, videoFormat, dir, videoTempPrefix+finalName, prefix+" [video]")
	if err != nil {
		return result, err
	}
	audioResult, err := d.DownloadFormat(ctx, video, audioFormat, dir, audioTempPrefix+finalName, prefix+" [audio]")
	if err != nil {
		return result, err
	}

	d.printer.Log(LogDebug, fmt.Sprintf("muxing %s + %s", filepath.Base(videoResult.Path), filepath.Base(audioResult.Path)))
	if err := muxer.Merge(ctx, videoResult.Path, audioResult.Path, outputPath); err != nil {
		return result, err
	}

	for _, tmp := range []string{videoResult.Path, audioResult.Path} {
		if err := os.Remove(tmp); err != nil {
			return result, wrapCategory(CategoryFilesystem, fmt.Errorf("removing temporary stream: %w", err))
		}
	}

	if info, err := os.Stat(outputPath); err == nil {
		result.Bytes = info.Size()
	} else {
		result.Bytes = videoResult.Bytes + audioResult.Bytes
	}
	return result, nil
}
