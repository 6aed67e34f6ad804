// Package component defines the lifecycle contract shared by the HTTP
// server, upload staging and backend clients, and a registry that starts
// and stops them in order.
package component
