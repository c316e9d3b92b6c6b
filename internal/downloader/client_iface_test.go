package downloader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"
)

// mockYouTubeClient is a test double that satisfies YouTubeClient.
type mockYouTubeClient struct {
	getVideoFn  func(ctx context.Context, url string) (*youtube.Video, error)
	getStreamFn func(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error)
	httpDoer    HTTPDoer
	chunkSize   int64
	streamed    []int
}

func (m *mockYouTubeClient) GetVideoContext(ctx context.Context, url string) (*youtube.Video, error) {
	if m.getVideoFn != nil {
		return m.getVideoFn(ctx, url)
	}
	return &youtube.Video{}, nil
}

func (m *mockYouTubeClient) GetStreamContext(ctx context.Context, video *youtube.Video, format *youtube.Format) (io.ReadCloser, int64, error) {
	m.streamed = append(m.streamed, format.ItagNo)
	if m.getStreamFn != nil {
		return m.getStreamFn(ctx, video, format)
	}
	return io.NopCloser(&io.LimitedReader{}), 0, nil
}

func (m *mockYouTubeClient) HTTP() HTTPDoer       { return m.httpDoer }
func (m *mockYouTubeClient) SetChunkSize(s int64) { m.chunkSize = s }

var _ YouTubeClient = (*mockYouTubeClient)(nil)

// payloadStream serves data for every format.
func payloadStream(data string) func(context.Context, *youtube.Video, *youtube.Format) (io.ReadCloser, int64, error) {
	return func(context.Context, *youtube.Video, *youtube.Format) (io.ReadCloser, int64, error) {
		return io.NopCloser(bytes.NewReader([]byte(data))), int64(len(data)), nil
	}
}

func TestYouTubeClientAdapter_HTTP(t *testing.T) {
	httpClient := &http.Client{Timeout: 5 * time.Second}
	adapter := &youtubeClientAdapter{&youtube.Client{HTTPClient: httpClient}}

	doer := adapter.HTTP()
	if doer == nil {
		t.Fatal("HTTP() returned nil")
	}
	if doer != httpClient {
		t.Fatal("HTTP() did not return the underlying HTTPClient")
	}
}

func TestYouTubeClientAdapter_SetChunkSize(t *testing.T) {
	adapter := &youtubeClientAdapter{&youtube.Client{}}

	adapter.SetChunkSize(1024 * 1024)
	if adapter.Client.ChunkSize != 1024*1024 {
		t.Fatalf("expected ChunkSize 1048576, got %d", adapter.Client.ChunkSize)
	}
}

func TestNewClientHasNoTimeoutByDefault(t *testing.T) {
	client := newClient(Options{})
	httpClient, ok := client.HTTP().(*http.Client)
	if !ok {
		t.Fatalf("expected *http.Client, got %T", client.HTTP())
	}
	if httpClient.Timeout != 0 {
		t.Fatalf("expected no timeout, got %s", httpClient.Timeout)
	}
	if httpClient.Jar == nil {
		t.Fatalf("expected cookie jar to be configured")
	}
}

func TestConsistentTransportSetsHeaders(t *testing.T) {
	var seen http.Header
	transport := &consistentTransport{
		base: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			seen = req.Header.Clone()
			return nil, errors.New("stop")
		}),
		userAgent: "test-agent",
	}
	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	req.Header.Set("Accept", "text/html")
	_, _ = transport.RoundTrip(req)

	if seen.Get("User-Agent") != "test-agent" {
		t.Fatalf("expected user agent to be set, got %q", seen.Get("User-Agent"))
	}
	if seen.Get("Accept") != "text/html" {
		t.Fatalf("expected caller Accept header to be kept, got %q", seen.Get("Accept"))
	}
	if seen.Get("Accept-Language") == "" {
		t.Fatalf("expected Accept-Language to be set")
	}
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
