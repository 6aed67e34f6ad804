package diarization

// Segment is a speaker-attributed time range as produced by a diarizer.
// Consecutive segments may carry the same speaker label.
type Segment struct {
	// Speaker is the diarizer's label, e.g. "SPEAKER_00".
	Speaker string `json:"speaker"`
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
}

// Turn is a maximal run of same-speaker segments.
//
// End is the start of the next turn, not the end of the run's last segment,
// so silence between speakers belongs to the following turn's onset. Only the
// final turn ends at its own last segment's end.
type Turn struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}
