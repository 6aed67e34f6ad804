// Package transcription defines the speech-to-text provider interface and
// batch transcription of uploaded audio.
//
// Backends:
//
//   - transcription/whisper: faster-whisper HTTP sidecar
//   - transcription/openai: OpenAI audio transcription API
//
// Batch fans a request's files out to the selected provider with bounded
// concurrency and returns one Result per file, in upload order.
package transcription
