package types

// All timestamps and durations are in seconds. The allocation strategies do
// float math on them directly, so they stay float64 end to end instead of
// time.Duration.

// ClipDescriptor describes one probed source clip. Dimensions and FPS come
// from the first video stream, zero if the file has none.
type ClipDescriptor struct {
	Index    int
	Path     string
	Duration float64
	Width    int
	Height   int
	FPS      float64
	HasAudio bool
}

// EnergySegment is one of N equal-length intervals of the audio track with
// aggregate loudness and tempo statistics.
type EnergySegment struct {
	Index    int
	Start    float64
	End      float64
	Duration float64
	Energy   float64
	Tempo    float64
}

// DistributedClip maps a sub-interval of a source clip onto an interval of
// the output timeline. SourceEnd-SourceStart equals OutputEnd-OutputStart
// unless the clip was centered inside a larger slot.
type DistributedClip struct {
	Clip        ClipDescriptor
	SourceStart float64
	SourceEnd   float64
	OutputStart float64
	OutputEnd   float64
}

// EditPlan is the immutable result of one planning pass. One plan is consumed
// by exactly one execution.
type EditPlan struct {
	Clips         []ClipDescriptor
	AudioPath     string
	AudioDuration float64
	Strategy      string
	Distributed   []DistributedClip
}

// ExecutionResult describes the final artifact of a successful execution.
type ExecutionResult struct {
	OutputPath string  `json:"output_path"`
	Duration   float64 `json:"duration_sec"`
	SizeBytes  int64   `json:"size_bytes"`
	ClipCount  int     `json:"clip_count"`
	Strategy   string  `json:"strategy"`
}

// MediaInfo is the parsed result of probing a media file.
type MediaInfo struct {
	Duration float64
	Size     int64
	BitRate  int64
	Streams  []StreamInfo
}

type StreamInfo struct {
	CodecType string
	Codec     string
	Width     int
	Height    int
	FPS       float64
	Channels  int
}

// FirstVideoStream returns the first video-typed stream, if any.
func (m MediaInfo) FirstVideoStream() (StreamInfo, bool) {
	for _, s := range m.Streams {
		if s.CodecType == "video" {
			return s, true
		}
	}
	return StreamInfo{}, false
}

// HasAudioStream reports whether any stream is audio-typed.
func (m MediaInfo) HasAudioStream() bool {
	for _, s := range m.Streams {
		if s.CodecType == "audio" {
			return true
		}
	}
	return false
}
