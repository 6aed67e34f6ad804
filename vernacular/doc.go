// Package vernacular expands domain jargon in a transcript with a
// completion model.
//
// The transcript is split into whitespace-delimited chunks that fit a
// character budget; each chunk is sent with the glossary and the model
// returns it with definitions added in parentheses after each term. Chunks
// run concurrently and are reassembled in order.
package vernacular
