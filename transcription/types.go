package transcription

import "io"

// Request holds parameters for one transcription call. Open is called once
// per attempt so retries can re-read the audio.
type Request struct {
	// Filename is the upload's sanitised name; backends use its extension
	// to tell the audio format.
	Filename string
	// Open returns a fresh reader over the audio.
	Open func() (io.ReadCloser, error)
	// Language is the expected language of the audio (e.g. "en").
	Language string
	// Model overrides the backend's configured model.
	Model string
}

// Response holds the result of a transcription call.
type Response struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains time-aligned transcript segments, when the
	// backend returns them.
	Segments []Segment `json:"segments,omitempty"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration,omitempty"`
	// Language is the detected or specified language.
	Language string `json:"language,omitempty"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
