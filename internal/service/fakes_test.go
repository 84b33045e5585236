package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"lattesdocs/internal/model"
	"lattesdocs/internal/notification"
	"lattesdocs/internal/repository"
	"lattesdocs/internal/storage"
)

// memStore is an in-memory request store, document store and object store.
type memStore struct {
	mu        sync.Mutex
	requests  map[string]*model.Request
	documents []model.Document
	objects   map[string][]byte
	metadata  map[string]map[string]string
	unread    map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		requests: map[string]*model.Request{},
		objects:  map[string][]byte{},
		metadata: map[string]map[string]string{},
		unread:   map[string]bool{},
	}
}

func (m *memStore) requestsRepo() repository.RequestRepository   { return memRequests{m} }
func (m *memStore) documentsRepo() repository.DocumentRepository { return memDocuments{m} }

type memRequests struct{ m *memStore }

func (r memRequests) Create(_ context.Context, req *model.Request) (*model.Request, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.requests {
		if existing.PublicID == req.PublicID {
			return nil, repository.ErrDuplicatePublicID
		}
	}
	cp := *req
	r.m.requests[req.ID] = &cp
	out := cp
	return &out, nil
}

func (r memRequests) ExistsPublicID(_ context.Context, publicID string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.requests {
		if existing.PublicID == publicID {
			return true, nil
		}
	}
	return false, nil
}

func (r memRequests) find(match func(*model.Request) bool) (*model.Request, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.requests {
		if match(existing) {
			out := *existing
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memRequests) FindByPublicID(_ context.Context, publicID string) (*model.Request, error) {
	return r.find(func(x *model.Request) bool { return x.PublicID == publicID })
}

func (r memRequests) FindByPublicIDAndEmail(_ context.Context, publicID, email string) (*model.Request, error) {
	return r.find(func(x *model.Request) bool {
		return x.PublicID == publicID && strings.EqualFold(x.Email, email)
	})
}

func (r memRequests) UpdateStatus(_ context.Context, id string, status model.Status) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	req, ok := r.m.requests[id]
	if !ok {
		return sql.ErrNoRows
	}
	req.Status = status
	return nil
}

func (r memRequests) MarkFinalized(_ context.Context, id string, at time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	req, ok := r.m.requests[id]
	if !ok {
		return sql.ErrNoRows
	}
	if req.FinalizedAt == nil {
		req.FinalizedAt = &at
	}
	return nil
}

func (r memRequests) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.requests[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.m.requests, id)
	kept := r.m.documents[:0]
	for _, d := range r.m.documents {
		if d.RequestID != id {
			kept = append(kept, d)
		}
	}
	r.m.documents = kept
	return nil
}

type memDocuments struct{ m *memStore }

func (d memDocuments) Create(_ context.Context, doc *model.Document) (*model.Document, error) {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()
	d.m.documents = append(d.m.documents, *doc)
	out := *doc
	return &out, nil
}

func (d memDocuments) ListByRequest(_ context.Context, requestID string, order repository.SortOrder) ([]model.Document, error) {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()
	out := make([]model.Document, 0)
	for _, doc := range d.m.documents {
		if doc.RequestID == requestID {
			out = append(out, doc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == repository.NewestFirst {
			return out[i].UploadedAt.After(out[j].UploadedAt)
		}
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out, nil
}

func (m *memStore) Put(_ context.Context, key string, r io.Reader, opt storage.PutObjectOptions) (storage.ObjectInfo, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	m.metadata[key] = opt.Metadata
	return storage.ObjectInfo{Key: key, Size: int64(len(b)), ContentType: opt.ContentType}, nil
}

func (m *memStore) Get(_ context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	if !ok || m.unread[key] {
		return nil, storage.ObjectInfo{}, errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(b)), storage.ObjectInfo{Key: key, Size: int64(len(b))}, nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// breakObject makes the stored bytes of key unreadable.
func (m *memStore) breakObject(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unread[key] = true
}

// recordingGateway keeps every message and fails the ones fail selects.
type recordingGateway struct {
	mu   sync.Mutex
	sent []notification.Message
	fail func(notification.Message) error
}

func (g *recordingGateway) Send(_ context.Context, msg notification.Message) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = append(g.sent, msg)
	if g.fail != nil {
		return g.fail(msg)
	}
	return nil
}

// seqCodes hands out codes in order and then repeats the last one.
type seqCodes struct {
	codes []string
	i     int
	calls int
}

func (s *seqCodes) Generate() (string, error) {
	s.calls++
	c := s.codes[s.i]
	if s.i < len(s.codes)-1 {
		s.i++
	}
	return c, nil
}
