package alignment

import (
	"github.com/kbukum/flairscribe/diarization"
	"github.com/kbukum/flairscribe/validation"
)

// Request is the speechbox payload: raw diarizer and ASR output. Pointer
// fields distinguish a missing value from a zero value.
type Request struct {
	Diarization    []DiarizationEntry `json:"diarization" validate:"required,dive"`
	ASR            []ASRChunk         `json:"asr" validate:"required,dive"`
	GroupBySpeaker *bool              `json:"group_by_speaker,omitempty"`
}

// DiarizationEntry is one diarizer segment in pyannote's JSON shape.
type DiarizationEntry struct {
	Segment *SegmentBounds `json:"segment" validate:"required"`
	Label   *string        `json:"label" validate:"required"`
}

// SegmentBounds holds a segment's time range in seconds.
type SegmentBounds struct {
	Start *float64 `json:"start" validate:"required"`
	End   *float64 `json:"end" validate:"required"`
}

// ASRChunk is one chunk of ASR output with a [start, end] timestamp.
type ASRChunk struct {
	Text      *string    `json:"text" validate:"required"`
	Timestamp []*float64 `json:"timestamp" validate:"required,len=2,dive,required"`
}

// Validate reports every malformed field as an INVALID_INPUT error.
func (r *Request) Validate() error {
	return validation.Validate(r)
}

// Segments converts the diarization entries. Call after Validate.
func (r *Request) Segments() []diarization.Segment {
	out := make([]diarization.Segment, len(r.Diarization))
	for i, d := range r.Diarization {
		out[i] = diarization.Segment{Speaker: *d.Label, Start: *d.Segment.Start, End: *d.Segment.End}
	}
	return out
}

// Chunks converts the ASR entries. Call after Validate.
func (r *Request) Chunks() []Chunk {
	out := make([]Chunk, len(r.ASR))
	for i, c := range r.ASR {
		out[i] = Chunk{Text: *c.Text, Timestamp: Timestamp{*c.Timestamp[0], *c.Timestamp[1]}}
	}
	return out
}

// Mode resolves the request's grouping flag against a default.
func (r *Request) Mode(fallback Mode) Mode {
	if r.GroupBySpeaker == nil {
		return fallback
	}
	return ModeFor(*r.GroupBySpeaker)
}
