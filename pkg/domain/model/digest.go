package model

import (
	"io"

	"github.com/google/uuid"
)

// SourceFile is a file selected for digest calculation
type SourceFile interface {
	// Name returns the display name of the file
	Name() string
	// Open opens the file content for reading
	Open() (io.ReadCloser, error)
}

// FileDigest is a pair of file name and its hex encoded MD5 digest
type FileDigest struct {
	Name string `json:"name" toml:"name"`
	MD5  string `json:"md5" toml:"md5"`
}

// BatchID identifies one digest calculation pass
type BatchID string

// NewBatchID generates a new random BatchID
func NewBatchID() BatchID {
	return BatchID(uuid.NewString())
}

// DigestBatch is the result of one digest calculation pass. Files has the
// same order as the selection it was calculated from.
type DigestBatch struct {
	ID    BatchID      `json:"id" toml:"id"`
	Files []FileDigest `json:"files" toml:"files"`
}

// Len returns number of digests in the batch. It is safe on nil batch.
func (b *DigestBatch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Files)
}
