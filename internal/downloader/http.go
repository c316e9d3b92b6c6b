package downloader

import (
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/kkdai/youtube/v2"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

var sharedTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        10,
	MaxIdleConnsPerHost: 4,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	TLSHandshakeTimeout: 10 * time.Second,
	IdleConnTimeout:     90 * time.Second,
}

func CloseIdleConnections() {
	sharedTransport.CloseIdleConnections()
}

type consistentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *consistentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "*/*")
	}
	return t.base.RoundTrip(req)
}

// newClient builds the platform client. A zero opts.Timeout means requests
// may block indefinitely.
func newClient(opts Options) YouTubeClient {
	jar, _ := cookiejar.New(nil)
	httpClient := &http.Client{
		Timeout: opts.Timeout,
		Jar:     jar,
		Transport: &consistentTransport{
			base:      sharedTransport,
			userAgent: defaultUserAgent,
		},
	}
	return &youtubeClientAdapter{&youtube.Client{HTTPClient: httpClient}}
}
