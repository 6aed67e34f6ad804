package alignment

// Timestamp is a (start, end) pair in seconds. It marshals as a two-element
// JSON array, matching ASR engine output.
type Timestamp [2]float64

// Start returns the first element.
func (t Timestamp) Start() float64 { return t[0] }

// End returns the second element.
func (t Timestamp) End() float64 { return t[1] }

// Chunk is one ASR transcript unit.
type Chunk struct {
	Text      string    `json:"text"`
	Timestamp Timestamp `json:"timestamp"`
}

// Output is one speaker-attributed transcript record. In grouped mode it
// covers all chunks consumed by a turn; in per-chunk mode it mirrors a
// single chunk.
type Output struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp Timestamp `json:"timestamp"`
}

// Mode selects how consumed chunks are emitted.
type Mode int

const (
	// ModeGrouped emits one record per turn with concatenated text.
	ModeGrouped Mode = iota
	// ModePerChunk emits one record per consumed chunk.
	ModePerChunk
)

func (m Mode) String() string {
	if m == ModePerChunk {
		return "per_chunk"
	}
	return "grouped"
}

// ModeFor maps the group_by_speaker flag to a Mode.
func ModeFor(groupBySpeaker bool) Mode {
	if groupBySpeaker {
		return ModeGrouped
	}
	return ModePerChunk
}
