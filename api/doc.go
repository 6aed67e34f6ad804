// Package api holds the gin handlers for the processing endpoints:
// /speechbox aligns ASR output to speaker turns, /transcribe turns audio
// uploads into text and /vernacular annotates transcript jargon against
// uploaded glossaries.
package api
