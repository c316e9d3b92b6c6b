package downloader

import (
	"context"
	"io"
	"net/http"

	"github.com/kkdai/youtube/v2"
)

// HTTPDoer executes raw HTTP requests. *http.Client satisfies this interface.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// YouTubeClient is the slice of the platform client used by both binaries.
// Tests substitute a fake; production code wraps *youtube.Client.
type YouTubeClient interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
	GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
	// HTTP returns the underlying HTTP client.
	HTTP() HTTPDoer
	// SetChunkSize configures the chunk size for stream downloads.
	SetChunkSize(size int64)
}

// youtubeClientAdapter wraps *youtube.Client to satisfy YouTubeClient.
type youtubeClientAdapter struct {
	*youtube.Client
}

func (a *youtubeClientAdapter) HTTP() HTTPDoer       { return a.Client.HTTPClient }
func (a *youtubeClientAdapter) SetChunkSize(s int64) { a.Client.ChunkSize = s }

var _ YouTubeClient = (*youtubeClientAdapter)(nil)
