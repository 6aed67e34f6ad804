// Package logger provides zerolog-backed structured logging.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("speechbox")
//	log.Info("aligned transcript", logger.Fields("records", n))
package logger
