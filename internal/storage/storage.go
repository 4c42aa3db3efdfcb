// Package storage persists generated artifacts, currently the CSV
// exports the console produces.
package storage

import "io"

type ArtifactStore interface {
	Put(name string, r io.Reader) (string, error) // returns the stored path or URL
	Get(name string) (io.ReadCloser, error)
}
