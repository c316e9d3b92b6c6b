package downloader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// StreamKind is the track composition of a stream.
type StreamKind string

const (
	StreamAudioOnly StreamKind = "audio_only"
	StreamVideoOnly StreamKind = "video_only"
	StreamCombined  StreamKind = "both"
)

// StreamDescriptor describes one format offered for a video.
type StreamDescriptor struct {
	Itag       int
	Kind       StreamKind
	Container  string
	Resolution string
	Height     int
	Bitrate    int
	Format     *youtube.Format
}

func (s StreamDescriptor) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "itag=%d type=%s container=%s", s.Itag, s.Kind, s.Container)
	if s.Resolution != "" {
		fmt.Fprintf(&b, " res=%s", s.Resolution)
	}
	if s.Bitrate > 0 {
		fmt.Fprintf(&b, " bitrate=%dk", s.Bitrate/1000)
	}
	if s.Format != nil && s.Format.ContentLength > 0 {
		fmt.Fprintf(&b, " size=%s", humanBytes(s.Format.ContentLength))
	}
	return b.String()
}

// StreamSet holds the three disjoint collections offered for one video, in
// the order the platform listed them.
type StreamSet struct {
	AudioOnly []StreamDescriptor
	VideoOnly []StreamDescriptor
	Combined  []StreamDescriptor
}

// StreamGroup is a headed collection used for listings.
type StreamGroup struct {
	Kind    StreamKind
	Streams []StreamDescriptor
}

func (s StreamSet) Groups() []StreamGroup {
	return []StreamGroup{
		{Kind: StreamAudioOnly, Streams: s.AudioOnly},
		{Kind: StreamVideoOnly, Streams: s.VideoOnly},
		{Kind: StreamCombined, Streams: s.Combined},
	}
}

func (s StreamSet) Len() int {
	return len(s.AudioOnly) + len(s.VideoOnly) + len(s.Combined)
}

// ClassifyStreams splits video's formats by kind. Formats carrying neither
// audio channels nor dimensions are left out.
func ClassifyStreams(video *youtube.Video) StreamSet {
	var set StreamSet
	if video == nil {
		return set
	}
	for i := range video.Formats {
		desc, ok := describeFormat(&video.Formats[i])
		if !ok {
			continue
		}
		switch desc.Kind {
		case StreamAudioOnly:
			set.AudioOnly = append(set.AudioOnly, desc)
		case StreamVideoOnly:
			set.VideoOnly = append(set.VideoOnly, desc)
		case StreamCombined:
			set.Combined = append(set.Combined, desc)
		}
	}
	return set
}

func describeFormat(f *youtube.Format) (StreamDescriptor, bool) {
	hasAudio := f.AudioChannels > 0
	hasVideo := f.Width > 0 || f.Height > 0 || f.QualityLabel != ""
	var kind StreamKind
	switch {
	case hasAudio && hasVideo:
		kind = StreamCombined
	case hasAudio:
		kind = StreamAudioOnly
	case hasVideo:
		kind = StreamVideoOnly
	default:
		return StreamDescriptor{}, false
	}

	desc := StreamDescriptor{
		Itag:      f.ItagNo,
		Kind:      kind,
		Container: mimeToExt(f.MimeType),
		Bitrate:   bitrateForFormat(f),
		Format:    f,
	}
	if hasVideo {
		desc.Height = formatHeight(f)
		desc.Resolution = f.QualityLabel
		if desc.Resolution == "" && desc.Height > 0 {
			desc.Resolution = strconv.Itoa(desc.Height) + "p"
		}
	}
	return desc, true
}
