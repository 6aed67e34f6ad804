package diarization

import (
	"github.com/kbukum/flairscribe/errors"
)

// MergeTurns folds consecutive segments that share a speaker label into turns.
// It returns an INVALID_INPUT error when segments is empty.
func MergeTurns(segments []Segment) ([]Turn, error) {
	if len(segments) == 0 {
		return nil, errors.InvalidInput("diarization", "at least one diarization segment is required")
	}

	turns := make([]Turn, 0, 4)
	previous := segments[0]
	current := segments[0]
	for _, s := range segments[1:] {
		current = s
		if s.Speaker != previous.Speaker {
			turns = append(turns, Turn{Speaker: previous.Speaker, Start: previous.Start, End: s.Start})
			previous = s
		}
	}
	turns = append(turns, Turn{Speaker: previous.Speaker, Start: previous.Start, End: current.End})
	return turns, nil
}

// Speakers returns the distinct speaker labels in order of first appearance.
func Speakers(turns []Turn) []string {
	seen := make(map[string]bool, len(turns))
	var out []string
	for _, t := range turns {
		if !seen[t.Speaker] {
			seen[t.Speaker] = true
			out = append(out, t.Speaker)
		}
	}
	return out
}
