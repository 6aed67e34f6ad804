package alignment

import (
	"math"
	"strings"

	"github.com/kbukum/flairscribe/diarization"
)

// Align attributes ASR chunks to speaker turns.
//
// For each turn, in order, the remaining chunk whose end is closest to the
// turn's end is located (lowest index on ties). Every remaining chunk up to
// and including it is consumed by that turn. Consumption is monotonic: a
// chunk is never reconsidered once a turn has taken it. Turns left over after
// the chunks run out produce nothing.
//
// In grouped mode a turn whose concatenated text is "" or " " emits nothing
// and leaves its chunks for the next turn. The grouped timestamp starts at
// the first remaining chunk, not at the turn's own start.
func Align(turns []diarization.Turn, chunks []Chunk, mode Mode) []Output {
	out := make([]Output, 0, len(turns))
	pos := 0
	for _, turn := range turns {
		if pos >= len(chunks) {
			break
		}
		k := nearestEnd(chunks, pos, turn.End)

		if mode == ModePerChunk {
			for _, c := range chunks[pos : k+1] {
				out = append(out, Output{Speaker: turn.Speaker, Text: c.Text, Timestamp: c.Timestamp})
			}
			pos = k + 1
			continue
		}

		text := joinText(chunks[pos : k+1])
		if text == "" || text == " " {
			continue
		}
		out = append(out, Output{
			Speaker:   turn.Speaker,
			Text:      text,
			Timestamp: Timestamp{chunks[pos].Timestamp.Start(), chunks[k].Timestamp.End()},
		})
		pos = k + 1
	}
	return out
}

// nearestEnd returns the index in chunks[from:] (as an absolute index) whose
// end timestamp is closest to end. The strict comparison keeps the first of
// equally close chunks.
func nearestEnd(chunks []Chunk, from int, end float64) int {
	best := from
	bestDiff := math.Abs(chunks[from].Timestamp.End() - end)
	for i := from + 1; i < len(chunks); i++ {
		if d := math.Abs(chunks[i].Timestamp.End() - end); d < bestDiff {
			best, bestDiff = i, d
		}
	}
	return best
}

func joinText(chunks []Chunk) string {
	if len(chunks) == 1 {
		return chunks[0].Text
	}
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.Text)
	}
	return b.String()
}
