// Package version reports build information for the /info endpoint and
// startup logs.
package version
