package downloader

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const watchBaseURL = "https://www.youtube.com/watch"

// NormalizeWatchURL extracts the "v" query parameter from raw and returns the
// canonical watch URL for it. The identifier itself is passed through as-is.
func NormalizeWatchURL(raw string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", wrapCategory(CategoryInvalidURL, fmt.Errorf("invalid URL: %w", err))
	}
	id := parsed.Query().Get("v")
	if id == "" {
		return "", wrapCategory(CategoryInvalidURL, errors.New("unrecognized video URL: missing v parameter"))
	}
	return watchURLForID(id), nil
}

// ResolveLink turns a scraped, possibly relative link into an absolute URL.
func ResolveLink(base, link string) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", wrapCategory(CategoryInvalidURL, fmt.Errorf("invalid link %q: %w", link, err))
	}
	if ref.IsAbs() || base == "" {
		return ref.String(), nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", wrapCategory(CategoryInvalidURL, fmt.Errorf("invalid base URL %q: %w", base, err))
	}
	return baseURL.ResolveReference(ref).String(), nil
}

func watchURLForID(id string) string {
	if id == "" {
		return ""
	}
	return watchBaseURL + "?v=" + url.QueryEscape(id)
}
