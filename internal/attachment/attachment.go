// Package attachment turns stored documents into email attachments.
package attachment

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"lattesdocs/internal/model"
	"lattesdocs/internal/storage"
)

// DefaultMimeType is used when the extension is unknown.
const DefaultMimeType = "application/octet-stream"

// ErrNoFile marks a document whose file reference is empty.
var ErrNoFile = errors.New("document has no stored file")

var knownTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// Attachment is a document ready for transport.
type Attachment struct {
	Filename string
	MimeType string
	// Content is the base64 (standard encoding) file body.
	Content string
}

// Resolution is either an Attachment or a skip with its reason.
type Resolution struct {
	Attachment *Attachment
	Reason     error
}

// Skipped reports whether the document could not be attached.
func (r Resolution) Skipped() bool {
	return r.Attachment == nil
}

// Resolver reads document bytes from storage.
type Resolver struct {
	store storage.Storage
}

func NewResolver(store storage.Storage) *Resolver {
	return &Resolver{store: store}
}

// Resolve never fails: unreadable documents come back skipped.
func (r *Resolver) Resolve(ctx context.Context, doc model.Document) Resolution {
	if doc.File.StorageKey == "" {
		return Resolution{Reason: ErrNoFile}
	}

	rc, _, err := r.store.Get(ctx, doc.File.StorageKey)
	if err != nil {
		return Resolution{Reason: fmt.Errorf("open %s: %w", doc.File.StorageKey, err)}
	}
	defer rc.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rc); err != nil {
		return Resolution{Reason: fmt.Errorf("read %s: %w", doc.File.StorageKey, err)}
	}

	name := Filename(doc)
	return Resolution{Attachment: &Attachment{
		Filename: name,
		MimeType: MimeType(name),
		Content:  base64.StdEncoding.EncodeToString(buf.Bytes()),
	}}
}

// Filename is the base name shown to recipients: the uploaded name when
// known, else the last segment of the storage key.
func Filename(doc model.Document) string {
	name := strings.ReplaceAll(doc.File.OriginalFilename, `\`, "/")
	if base := path.Base(name); name != "" && base != "." && base != "/" {
		return base
	}
	return path.Base(doc.File.StorageKey)
}

// MimeType guesses from the extension, falling back to DefaultMimeType.
func MimeType(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if t, ok := knownTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" && ext != "" {
		return t
	}
	return DefaultMimeType
}
