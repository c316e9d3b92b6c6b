package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/kkdai/youtube/v2"

	"github.com/lvcoi/ytdl-catalog/internal/downloader"
)

// fakeClient serves canned videos keyed by video ID.
type fakeClient struct {
	videos   map[string]*youtube.Video
	errs     map[string]error
	requests []string
	streams  int
}

func (c *fakeClient) GetVideoContext(_ context.Context, url string) (*youtube.Video, error) {
	c.requests = append(c.requests, url)
	id := url[strings.LastIndex(url, "v=")+2:]
	if err, ok := c.errs[id]; ok {
		return nil, err
	}
	if v, ok := c.videos[id]; ok {
		return v, nil
	}
	return nil, errors.New("unexpected video " + id)
}

func (c *fakeClient) GetStreamContext(_ context.Context, _ *youtube.Video, f *youtube.Format) (io.ReadCloser, int64, error) {
	c.streams++
	data := []byte(f.MimeType)
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

func (c *fakeClient) HTTP() downloader.HTTPDoer { return nil }
func (c *fakeClient) SetChunkSize(int64)        {}

// copyMuxer writes the video temporary as the merged output.
type copyMuxer struct {
	calls int
}

func (m *copyMuxer) Merge(_ context.Context, videoPath, _, outputPath string) error {
	m.calls++
	data, err := os.ReadFile(videoPath)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}

func splitVideo(id, title string) *youtube.Video {
	return &youtube.Video{
		ID:    id,
		Title: title,
		Formats: youtube.FormatList{
			{ItagNo: 18, MimeType: `video/mp4; codecs="avc1.42001E, mp4a.40.2"`, QualityLabel: "360p", Width: 640, Height: 360, AudioChannels: 2, Bitrate: 500000},
			{ItagNo: 133, MimeType: `video/mp4; codecs="avc1.4d4015"`, QualityLabel: "240p", Width: 426, Height: 240, Bitrate: 250000},
			{ItagNo: 160, MimeType: `video/mp4; codecs="avc1.4d400c"`, QualityLabel: "144p", Width: 256, Height: 144, Bitrate: 110000},
			{ItagNo: 140, MimeType: `audio/mp4; codecs="mp4a.40.2"`, AudioChannels: 2, Bitrate: 130000},
			{ItagNo: 139, MimeType: `audio/mp4; codecs="mp4a.40.5"`, AudioChannels: 2, Bitrate: 48000},
		},
	}
}

// webmOnlyVideo offers nothing in mp4.
func webmOnlyVideo(id, title string) *youtube.Video {
	return &youtube.Video{
		ID:    id,
		Title: title,
		Formats: youtube.FormatList{
			{ItagNo: 278, MimeType: `video/webm; codecs="vp9"`, QualityLabel: "144p", Width: 256, Height: 144, Bitrate: 90000},
			{ItagNo: 249, MimeType: `audio/webm; codecs="opus"`, AudioChannels: 2, Bitrate: 40000},
		},
	}
}

type captured struct {
	out    bytes.Buffer
	errOut bytes.Buffer
}

func newTestDownloader(t *testing.T, client downloader.YouTubeClient) (*downloader.Downloader, *captured) {
	t.Helper()
	c := &captured{}
	opts := downloader.Options{Quiet: true, LogLevel: "info"}
	printer := downloader.NewPrinter(opts, &c.out, &c.errOut)
	return downloader.NewWithClient(client, opts, printer), c
}
