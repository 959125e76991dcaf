package ffprobe

// MediaInfo is the canonical description of one probed media file. Values are
// immutable after construction; each stream belongs to exactly one MediaInfo.
type MediaInfo struct {
	Path            string
	Format          Format
	VideoStreams    []VideoStream
	AudioStreams    []AudioStream
	SubtitleStreams []SubtitleStream
}

// Format captures container-level metadata.
type Format struct {
	Name     string
	LongName string
	// Duration is the container duration in seconds.
	Duration float64
	Size     int64
	BitRate  int64
	Tags     map[string]string
}

// StreamInfo holds the attributes shared by every stream kind.
type StreamInfo struct {
	Index         int
	Codec         string
	CodecLongName string
	Language      string
	Tags          map[string]string
}

// VideoStream describes one video stream.
type VideoStream struct {
	StreamInfo
	Width       int
	Height      int
	PixelFormat string
	AspectRatio string
	FrameRate   float64
	FrameCount  int64
	BitRate     int64
}

// AudioStream describes one audio stream.
type AudioStream struct {
	StreamInfo
	SampleRate    int
	Channels      int
	ChannelLayout string
	SampleFormat  string
	BitRate       int64
}

// SubtitleStream describes one subtitle stream.
type SubtitleStream struct {
	StreamInfo
}

// HasVideo reports whether at least one video stream was found.
func (m *MediaInfo) HasVideo() bool {
	return len(m.VideoStreams) > 0
}

// HasAudio reports whether at least one audio stream was found.
func (m *MediaInfo) HasAudio() bool {
	return len(m.AudioStreams) > 0
}

// HasSubtitles reports whether at least one subtitle stream was found.
func (m *MediaInfo) HasSubtitles() bool {
	return len(m.SubtitleStreams) > 0
}

// PrimaryVideo returns the first video stream, if any.
func (m *MediaInfo) PrimaryVideo() (VideoStream, bool) {
	if len(m.VideoStreams) == 0 {
		return VideoStream{}, false
	}
	return m.VideoStreams[0], true
}

// PrimaryAudio returns the first audio stream, if any.
func (m *MediaInfo) PrimaryAudio() (AudioStream, bool) {
	if len(m.AudioStreams) == 0 {
		return AudioStream{}, false
	}
	return m.AudioStreams[0], true
}
