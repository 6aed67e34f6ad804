// Package util holds small helpers shared across packages: size parsing,
// secret masking and upload filename handling.
package util
