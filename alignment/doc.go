// Package alignment attributes ASR transcript chunks to diarized speaker
// turns, producing a speaker-labelled transcript.
//
// The aligner is pure and holds no state; it is safe for concurrent use.
package alignment
