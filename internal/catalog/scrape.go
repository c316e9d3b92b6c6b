// Package catalog turns a saved playlist or channel page into the list of
// videos still missing from an output directory.
package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lvcoi/ytdl-catalog/internal/downloader"
)

// videoTitleSelector matches the title anchor of every entry in a saved
// playlist or channel page.
const videoTitleSelector = "a#video-title"

// VideoReference is one catalog entry. Link is the raw href and may be
// relative.
type VideoReference struct {
	Title string
	Link  string
}

func parseError(err error) error {
	return downloader.CategorizedError{Category: downloader.CategoryParse, Err: err}
}

// ScrapeFile reads and scrapes the HTML document at path.
func ScrapeFile(path string) ([]VideoReference, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, parseError(fmt.Errorf("opening catalog: %w", err))
	}
	defer f.Close()
	return Scrape(f)
}

// Scrape returns the title anchors of r in document order. A title seen more
// than once keeps its first position and takes the last link.
func Scrape(r io.Reader) ([]VideoReference, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, parseError(fmt.Errorf("parsing catalog: %w", err))
	}

	var refs []VideoReference
	index := make(map[string]int)
	doc.Find(videoTitleSelector).Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		title, ok := s.Attr("title")
		if !ok || title == "" {
			title = strings.TrimSpace(s.Text())
		}
		if title == "" {
			return
		}
		if i, seen := index[title]; seen {
			refs[i].Link = href
			return
		}
		index[title] = len(refs)
		refs = append(refs, VideoReference{Title: title, Link: href})
	})
	return refs, nil
}
