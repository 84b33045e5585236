// Package storage keeps the bytes of uploaded documents in an S3-compatible
// object store. Only streaming readers are used; nothing touches local disk.
package storage

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// KeyPrefix roots every document object.
const KeyPrefix = "lattes_docs"

// PutObjectOptions describe an upload. Size is the exact byte count, or -1
// when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
}

// Storage is the object store used for document content.
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get streams an object. A missing key is an error.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	Delete(ctx context.Context, key string) error
}

// ObjectKey builds lattes_docs/YYYY/MM/<uuid><ext> for a file uploaded at t.
// ext keeps its leading dot and is lower-cased.
func ObjectKey(t time.Time, ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return path.Join(KeyPrefix, t.Format("2006"), t.Format("01"), uuid.NewString()+ext)
}
