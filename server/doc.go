// Package server exposes the search engine over HTTP: file and sample-data
// loading, search, health and concept catalog introspection.
package server
