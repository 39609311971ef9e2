// internal/embeddings/errors.go
package embeddings

import "errors"

var (
	ErrNoProvider    = errors.New("no embedding provider configured")
	ErrShortResponse = errors.New("embedding response shorter than input batch")
)
