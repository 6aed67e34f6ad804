// Package storage stages uploaded files between the HTTP handlers and the
// transcription and glossary pipelines.
//
// Each request opens a Stage under its own random prefix, so concurrent
// requests never see each other's files. Backends register themselves
// from init:
//
//   - storage/local: a directory on the local filesystem
//   - storage/s3: Amazon S3 or an S3-compatible service
//
// Configuration:
//
//	storage:
//	  provider: "local"
//	  base_path: "uploads"
package storage
