package downloader

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/kkdai/youtube/v2"
)

// Category classifies an error for exit codes and batch skip decisions.
type Category string

const (
	CategoryUnknown          Category = "unknown"
	CategoryInvalidURL       Category = "invalid_url"
	CategoryStreamNotFound   Category = "stream_not_found"
	CategoryNoMatchingStream Category = "no_matching_stream"
	CategoryParse            Category = "parse"
	CategoryUnavailable      Category = "unavailable"
	CategoryNetwork          Category = "network"
	CategoryFilesystem       Category = "filesystem"
	CategoryMux              Category = "mux"
)

// CategorizedError attaches a Category to an underlying error.
type CategorizedError struct {
	Category Category
	Err      error
}

func (e CategorizedError) Error() string {
	if e.Err == nil {
		return string(e.Category)
	}
	return e.Err.Error()
}

func (e CategorizedError) Unwrap() error {
	return e.Err
}

func wrapCategory(category Category, err error) error {
	if err == nil {
		return nil
	}
	return CategorizedError{Category: category, Err: err}
}

// CategoryOf returns the innermost-wrapping category attached to err.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return CategoryUnknown
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch CategoryOf(err) {
	case CategoryInvalidURL, CategoryParse:
		return 2
	case CategoryStreamNotFound, CategoryNoMatchingStream:
		return 3
	case CategoryUnavailable:
		return 4
	case CategoryNetwork:
		return 5
	case CategoryFilesystem:
		return 6
	case CategoryMux:
		return 7
	default:
		return 1
	}
}

// IsSkippable reports whether a batch run may log err and move to the next video.
func IsSkippable(err error) bool {
	switch CategoryOf(err) {
	case CategoryNoMatchingStream, CategoryUnavailable:
		return true
	}
	return false
}

// classifyVideoError tags metadata fetch failures. Bad video ids and videos
// the platform refuses to serve are "unavailable"; everything else is network.
func classifyVideoError(err error) error {
	return classifyPlatformError(err, true)
}

// classifyStreamError tags stream fetch failures. Only the client's typed
// errors count as unavailable here; message text is not inspected.
func classifyStreamError(err error) error {
	return classifyPlatformError(err, false)
}

func classifyPlatformError(err error, matchMessages bool) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(CategorizedError); ok {
		return err
	}
	var playability *youtube.ErrPlayabiltyStatus
	switch {
	case errors.Is(err, youtube.ErrVideoIDMinLength),
		errors.Is(err, youtube.ErrInvalidCharactersInVideoID),
		errors.Is(err, youtube.ErrVideoPrivate),
		errors.Is(err, youtube.ErrLoginRequired),
		errors.Is(err, youtube.ErrNotPlayableInEmbed),
		errors.As(err, &playability):
		return wrapCategory(CategoryUnavailable, err)
	}
	if isTransportError(err) {
		return wrapCategory(CategoryNetwork, err)
	}
	if matchMessages && isRestrictedAccess(err) {
		return wrapCategory(CategoryUnavailable, err)
	}
	return wrapCategory(CategoryNetwork, err)
}

// isTransportError reports failures below the platform client: dial, TLS,
// socket and read errors, and cancellation.
func isTransportError(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var errno syscall.Errno
	return errors.As(err, &errno)
}

var restrictedMarkers = []string{
	"private",
	"sign in",
	"login required",
	"members only",
	"premium",
	"copyright",
	"unavailable",
	"age-restricted",
	"age restricted",
	"not available",
}

func isRestrictedAccess(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range restrictedMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
