package downloader

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"
)

const maxFilenameLength = 255

// unsafeFilenameChars are dropped from titles when building filenames.
var unsafeFilenameChars = regexp.MustCompile(`["#$%'*,./:;<>?\\^|~\x00-\x1F]`)

// DefaultFilename is the on-disk name for a stream of video: the title with
// unsafe punctuation removed, plus the container extension.
func DefaultFilename(video *youtube.Video, format *youtube.Format) string {
	title := ""
	if video != nil {
		title = video.Title
	}
	ext := "bin"
	if format != nil {
		ext = mimeToExt(format.MimeType)
	}
	return sanitize(title) + "." + ext
}

func sanitize(name string) string {
	clean := unsafeFilenameChars.ReplaceAllString(name, "")
	clean = strings.TrimSpace(clean)
	if len(clean) > maxFilenameLength {
		clean = strings.TrimSpace(clean[:maxFilenameLength])
	}
	if clean == "" {
		return "video"
	}
	return clean
}

func mimeToExt(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	parts := strings.Split(strings.TrimSpace(mime), "/")
	if len(parts) == 2 {
		switch parts[1] {
		case "3gpp":
			return "3gp"
		default:
			return parts[1]
		}
	}
	return "bin"
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for n >= unit*div && exp < 3 {
		div *= unit
		exp++
	}
	value := float64(n) / float64(div)
	suffix := []string{"KB", "MB", "GB", "TB"}
	return fmt.Sprintf("%.1f%s", value, suffix[exp])
}

func bitrateForFormat(f *youtube.Format) int {
	if f.Bitrate > 0 {
		return f.Bitrate
	}
	if f.AverageBitrate > 0 {
		return f.AverageBitrate
	}
	return 0
}

// formatHeight prefers the reported height and falls back to the quality
// label ("240p", "1080p60").
func formatHeight(f *youtube.Format) int {
	if f.Height > 0 {
		return f.Height
	}
	label := f.QualityLabel
	if i := strings.Index(label, "p"); i > 0 {
		if v, err := strconv.Atoi(label[:i]); err == nil {
			return v
		}
	}
	return 0
}
