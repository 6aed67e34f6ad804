// Package diarization models speaker diarization output and collapses
// segment streams into speaker turns.
//
//	turns, err := diarization.MergeTurns([]diarization.Segment{
//	    {Speaker: "A", Start: 0, End: 1},
//	    {Speaker: "A", Start: 1, End: 1.5},
//	    {Speaker: "B", Start: 1.5, End: 3},
//	})
//	// turns: [{A 0 1.5} {B 1.5 3}]
package diarization
