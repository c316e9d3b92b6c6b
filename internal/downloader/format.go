package downloader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kkdai/youtube/v2"
)

// SelectStream resolves a user-supplied stream identifier. An empty
// identifier picks the first listed format.
func SelectStream(video *youtube.Video, identifier string) (*youtube.Format, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		if video == nil || len(video.Formats) == 0 {
			return nil, wrapCategory(CategoryStreamNotFound, errors.New("video has no streams"))
		}
		return &video.Formats[0], nil
	}
	itag, err := strconv.Atoi(identifier)
	if err != nil {
		return nil, wrapCategory(CategoryStreamNotFound, fmt.Errorf("stream %q not found (itags are numeric)", identifier))
	}
	if video != nil {
		for i := range video.Formats {
			if video.Formats[i].ItagNo == itag {
				return &video.Formats[i], nil
			}
		}
	}
	return nil, wrapCategory(CategoryStreamNotFound, fmt.Errorf("stream %d not found", itag))
}

// SelectProgressive picks the lowest-resolution stream carrying both audio
// and video. Equal resolutions keep platform order.
func SelectProgressive(video *youtube.Video) (*youtube.Format, error) {
	best := lowestResolution(ClassifyStreams(video).Combined, "", "")
	if best == nil {
		return nil, wrapCategory(CategoryNoMatchingStream, fmt.Errorf("no progressive (audio+video) stream found for %s", videoLabel(video)))
	}
	return best, nil
}

// SelectSplit picks the lowest-resolution video-only stream and the
// lowest-bitrate audio-only stream in container. A non-empty quality keeps
// only video streams with that exact label (e.g. "240p").
func SelectSplit(video *youtube.Video, container, quality string) (videoFormat, audioFormat *youtube.Format, err error) {
	set := ClassifyStreams(video)
	videoFormat = lowestResolution(set.VideoOnly, container, quality)
	audioFormat = lowestBitrate(set.AudioOnly, container)
	if videoFormat == nil || audioFormat == nil {
		return nil, nil, wrapCategory(CategoryNoMatchingStream, fmt.Errorf("no stream matching your filters found for %s", videoLabel(video)))
	}
	return videoFormat, audioFormat, nil
}

// lowestResolution returns the matching stream with the smallest height.
// Streams of unknown height only win when no height is known at all.
func lowestResolution(streams []StreamDescriptor, container, quality string) *youtube.Format {
	var candidates []*StreamDescriptor
	for i := range streams {
		s := &streams[i]
		if !containerMatches(s, container) {
			continue
		}
		if quality != "" && !strings.EqualFold(s.Resolution, quality) {
			continue
		}
		candidates = append(candidates, s)
	}
	return lowestBy(candidates, func(s *StreamDescriptor) int { return s.Height })
}

// lowestBitrate returns the matching stream with the smallest bitrate, with
// unknown bitrates handled as in lowestResolution.
func lowestBitrate(streams []StreamDescriptor, container string) *youtube.Format {
	var candidates []*StreamDescriptor
	for i := range streams {
		if containerMatches(&streams[i], container) {
			candidates = append(candidates, &streams[i])
		}
	}
	return lowestBy(candidates, func(s *StreamDescriptor) int { return s.Bitrate })
}

// lowestBy picks the first candidate with the smallest positive key. When no
// candidate has a positive key the first one is returned.
func lowestBy(candidates []*StreamDescriptor, key func(*StreamDescriptor) int) *youtube.Format {
	if len(candidates) == 0 {
		return nil
	}
	var best *StreamDescriptor
	for _, s := range candidates {
		if key(s) <= 0 {
			continue
		}
		if best == nil || key(s) < key(best) {
			best = s
		}
	}
	if best == nil {
		best = candidates[0]
	}
	return best.Format
}

func containerMatches(s *StreamDescriptor, container string) bool {
	container = strings.TrimSpace(container)
	return container == "" || strings.EqualFold(s.Container, container)
}

func videoLabel(video *youtube.Video) string {
	if video == nil {
		return "video"
	}
	if video.Title != "" {
		return video.Title
	}
	return video.ID
}
