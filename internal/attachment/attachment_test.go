package attachment

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lattesdocs/internal/model"
	"lattesdocs/internal/storage"
	"lattesdocs/internal/storage/mocks"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk gone") }

func doc(key, name string) model.Document {
	return model.Document{
		ID:      "d1",
		DocType: model.DocTypeCourses,
		File:    model.FileRef{StorageKey: key, OriginalFilename: name},
	}
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("round trips the stored bytes", func(t *testing.T) {
		payload := []byte("%PDF-1.7\x00\x01\xff binary body")
		store := new(mocks.MockStorage)
		store.On("Get", mock.Anything, "lattes_docs/2026/03/a.pdf").
			Return(io.NopCloser(strings.NewReader(string(payload))), storage.ObjectInfo{}, nil)

		res := NewResolver(store).Resolve(context.Background(), doc("lattes_docs/2026/03/a.pdf", "Diploma Final.PDF"))

		require.False(t, res.Skipped())
		decoded, err := base64.StdEncoding.DecodeString(res.Attachment.Content)
		require.NoError(t, err)
		assert.Equal(t, payload, decoded)
		assert.Equal(t, "Diploma Final.PDF", res.Attachment.Filename)
		assert.Equal(t, "application/pdf", res.Attachment.MimeType)
		store.AssertExpectations(t)
	})

	t.Run("missing object is skipped", func(t *testing.T) {
		store := new(mocks.MockStorage)
		store.On("Get", mock.Anything, "lattes_docs/gone.png").
			Return(nil, storage.ObjectInfo{}, errors.New("NoSuchKey"))

		res := NewResolver(store).Resolve(context.Background(), doc("lattes_docs/gone.png", "gone.png"))

		assert.True(t, res.Skipped())
		assert.ErrorContains(t, res.Reason, "NoSuchKey")
	})

	t.Run("read error is skipped", func(t *testing.T) {
		store := new(mocks.MockStorage)
		store.On("Get", mock.Anything, "k").
			Return(io.NopCloser(failingReader{}), storage.ObjectInfo{}, nil)

		res := NewResolver(store).Resolve(context.Background(), doc("k", "x.pdf"))

		assert.True(t, res.Skipped())
		assert.ErrorContains(t, res.Reason, "disk gone")
	})

	t.Run("empty file reference is skipped without touching storage", func(t *testing.T) {
		store := new(mocks.MockStorage)

		res := NewResolver(store).Resolve(context.Background(), doc("", "x.pdf"))

		assert.True(t, res.Skipped())
		assert.ErrorIs(t, res.Reason, ErrNoFile)
		store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "cv.pdf", Filename(doc("lattes_docs/2026/03/u.pdf", `C:\Users\ana\cv.pdf`)))
	assert.Equal(t, "cv.pdf", Filename(doc("lattes_docs/2026/03/u.pdf", "docs/cv.pdf")))
	assert.Equal(t, "u.pdf", Filename(doc("lattes_docs/2026/03/u.pdf", "")))
}

func TestMimeType(t *testing.T) {
	tests := map[string]string{
		"a.pdf":     "application/pdf",
		"a.JPG":     "image/jpeg",
		"a.jpeg":    "image/jpeg",
		"scan.png":  "image/png",
		"pic.webp":  "image/webp",
		"noext":     DefaultMimeType,
		"weird.zzz": DefaultMimeType,
	}
	for name, want := range tests {
		assert.Equal(t, want, MimeType(name), name)
	}
}
