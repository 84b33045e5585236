package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lattesdocs/internal/attachment"
	"lattesdocs/internal/config"
	"lattesdocs/internal/model"
	"lattesdocs/internal/publicid"
	"lattesdocs/internal/repository"
	"lattesdocs/internal/storage"
)

// DeadlineLayout is the accepted deadline format (day/month/year).
const DeadlineLayout = "02/01/2006"

const (
	maxFullNameLen    = 120
	maxGoalLen        = 200
	maxPhoneLen       = 30
	maxDescriptionLen = 200
)

// CodeGenerator proposes public ids.
type CodeGenerator interface {
	Generate() (string, error)
}

// CreateRequestInput is the intake form.
type CreateRequestInput struct {
	FullName          string
	Email             string
	EmailConfirmation string
	Phone             string
	Goal              string
	// Deadline is dd/mm/yyyy or empty.
	Deadline string
	Notes    string
}

// UploadInput is one uploaded file with its classification.
type UploadInput struct {
	DocType     string
	Description string
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// RequestService covers intake, lookup, uploads and the internal workflow.
type RequestService interface {
	// Create validates the form, assigns a unique public id and stores the request as NEW.
	Create(ctx context.Context, in CreateRequestInput) (*model.Request, error)

	// Lookup is the customer self-service lookup. Any mismatch is ErrNotFound.
	Lookup(ctx context.Context, publicID, email string) (*model.Request, error)

	// Get finds a request by its public id after normalizing it.
	Get(ctx context.Context, publicID string) (*model.Request, error)

	// AddDocument checks size and extension, stores the bytes and appends the document.
	AddDocument(ctx context.Context, publicID string, in UploadInput) (*model.Document, error)

	ListDocuments(ctx context.Context, requestID string, order repository.SortOrder) ([]model.Document, error)

	// AdvanceStatus moves the workflow one step forward.
	AdvanceStatus(ctx context.Context, publicID string, next model.Status) (*model.Request, error)

	// Delete removes stored objects, then the request and its documents.
	Delete(ctx context.Context, publicID string) error
}

type requestService struct {
	requests  repository.RequestRepository
	documents repository.DocumentRepository
	store     storage.Storage
	codes     CodeGenerator
	upload    config.UploadConfig
	logger    *logrus.Logger
	now       func() time.Time
}

func NewRequestService(
	requests repository.RequestRepository,
	documents repository.DocumentRepository,
	store storage.Storage,
	codes CodeGenerator,
	upload config.UploadConfig,
	logger *logrus.Logger,
) RequestService {
	return &requestService{
		requests:  requests,
		documents: documents,
		store:     store,
		codes:     codes,
		upload:    upload,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *requestService) Create(ctx context.Context, in CreateRequestInput) (*model.Request, error) {
	req, err := s.validateCreate(in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	req.ID = uuid.NewString()
	req.Status = model.StatusNew
	req.CreatedAt = now
	req.UpdatedAt = now

	for attempt := 1; attempt <= publicid.MaxAttempts; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return nil, err
		}

		exists, err := s.requests.ExistsPublicID(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("check public id: %w", err)
		}
		if exists {
			continue
		}

		req.PublicID = code
		stored, err := s.requests.Create(ctx, req)
		if errors.Is(err, repository.ErrDuplicatePublicID) {
			// Lost a race with a concurrent create.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("db save failed: %w", err)
		}

		s.logger.WithFields(logrus.Fields{
			"public_id": stored.PublicID,
			"attempts":  attempt,
		}).Info("request created")
		return stored, nil
	}

	s.logger.WithField("attempts", publicid.MaxAttempts).Error("public id space exhausted")
	return nil, publicid.ErrExhausted
}

func (s *requestService) validateCreate(in CreateRequestInput) (*model.Request, error) {
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, invalid("full_name", ErrRequiredField, "Full name is required.")
	}
	if utf8.RuneCountInString(fullName) > maxFullNameLen {
		return nil, invalid("full_name", ErrFieldTooLong, "Full name must have at most %d characters.", maxFullNameLen)
	}

	email := strings.TrimSpace(in.Email)
	confirm := strings.TrimSpace(in.EmailConfirmation)
	if email == "" {
		return nil, invalid("email", ErrRequiredField, "Email is required.")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, invalid("email", ErrInvalidEmail, "Enter a valid email address.")
	}
	if !strings.EqualFold(email, confirm) {
		return nil, invalid("email_confirmation", ErrEmailMismatch, "The emails do not match.")
	}

	phone := strings.TrimSpace(in.Phone)
	if utf8.RuneCountInString(phone) > maxPhoneLen {
		return nil, invalid("phone", ErrFieldTooLong, "Phone must have at most %d characters.", maxPhoneLen)
	}
	goal := strings.TrimSpace(in.Goal)
	if utf8.RuneCountInString(goal) > maxGoalLen {
		return nil, invalid("goal", ErrFieldTooLong, "Goal must have at most %d characters.", maxGoalLen)
	}

	var deadline *time.Time
	if d := strings.TrimSpace(in.Deadline); d != "" {
		t, err := time.Parse(DeadlineLayout, d)
		if err != nil {
			return nil, invalid("deadline", ErrInvalidDeadline, "Deadline must use the dd/mm/yyyy format.")
		}
		deadline = &t
	}

	return &model.Request{
		FullName: fullName,
		Email:    email,
		Phone:    phone,
		Goal:     goal,
		Deadline: deadline,
		Notes:    strings.TrimSpace(in.Notes),
	}, nil
}

func (s *requestService) Lookup(ctx context.Context, publicID, email string) (*model.Request, error) {
	publicID = publicid.Normalize(publicID)
	email = strings.TrimSpace(email)
	if publicID == "" || email == "" {
		return nil, ErrNotFound
	}

	req, err := s.requests.FindByPublicIDAndEmail(ctx, publicID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *requestService) Get(ctx context.Context, publicID string) (*model.Request, error) {
	publicID = publicid.Normalize(publicID)
	if publicID == "" {
		return nil, ErrNotFound
	}

	req, err := s.requests.FindByPublicID(ctx, publicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *requestService) AddDocument(ctx context.Context, publicID string, in UploadInput) (*model.Document, error) {
	if in.Body == nil {
		return nil, ErrReaderNil
	}

	req, err := s.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	// Finalize already delivered the collection; a late file would never be sent.
	if req.Finalized() {
		return nil, invalid("file", ErrRequestFinalized, "This request was already finalized.")
	}

	docType := model.DocType(strings.ToUpper(strings.TrimSpace(in.DocType)))
	if !docType.Valid() {
		return nil, invalid("doc_type", ErrInvalidDocType, "Choose a valid document type.")
	}
	description := strings.TrimSpace(in.Description)
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return nil, invalid("description", ErrFieldTooLong, "Description must have at most %d characters.", maxDescriptionLen)
	}
	if in.Size > s.upload.MaxFileBytes() {
		return nil, invalid("file", ErrFileTooLarge, "File too large. Maximum size is %d MB.", s.upload.MaxFileMB)
	}
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(in.Filename, `\`, "/")))
	if !slices.Contains(s.upload.AllowedExtensions, strings.TrimPrefix(ext, ".")) {
		return nil, invalid("file", ErrExtensionNotAllowed, "File type not allowed. Send %s.", strings.Join(s.upload.AllowedExtensions, ", "))
	}

	doc := &model.Document{
		ID:          uuid.NewString(),
		RequestID:   req.ID,
		DocType:     docType,
		Description: description,
		File: model.FileRef{
			OriginalFilename: in.Filename,
			Size:             in.Size,
			ContentType:      in.ContentType,
		},
		UploadedAt: s.now().UTC(),
	}
	if doc.File.ContentType == "" || doc.File.ContentType == attachment.DefaultMimeType {
		doc.File.ContentType = attachment.MimeType(in.Filename)
	}

	key := storage.ObjectKey(doc.UploadedAt, ext)
	info, err := s.store.Put(ctx, key, in.Body, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: doc.File.ContentType,
		Metadata: map[string]string{
			"original-filename": url.PathEscape(in.Filename),
			"public-id":         req.PublicID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}
	doc.File.StorageKey = info.Key

	stored, err := s.documents.Create(ctx, doc)
	if err != nil {
		if delErr := s.store.Delete(ctx, info.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"public_id": req.PublicID,
		"doc_type":  stored.DocType,
		"size":      stored.File.Size,
	}).Info("document uploaded")
	return stored, nil
}

func (s *requestService) ListDocuments(ctx context.Context, requestID string, order repository.SortOrder) ([]model.Document, error) {
	return s.documents.ListByRequest(ctx, requestID, order)
}

func (s *requestService) AdvanceStatus(ctx context.Context, publicID string, next model.Status) (*model.Request, error) {
	req, err := s.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanAdvanceTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, req.Status, next)
	}

	if err := s.requests.UpdateStatus(ctx, req.ID, next); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"public_id": req.PublicID,
		"from":      req.Status,
		"to":        next,
	}).Info("request status advanced")

	req.Status = next
	return req, nil
}

func (s *requestService) Delete(ctx context.Context, publicID string) error {
	req, err := s.Get(ctx, publicID)
	if err != nil {
		return err
	}

	docs, err := s.documents.ListByRequest(ctx, req.ID, repository.OldestFirst)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	// Objects go first; a failure keeps the rows so the delete can be retried.
	for _, d := range docs {
		if d.File.StorageKey == "" {
			continue
		}
		if err := s.store.Delete(ctx, d.File.StorageKey); err != nil {
			return fmt.Errorf("delete storage: %w", err)
		}
	}

	if err := s.requests.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"public_id": req.PublicID,
		"documents": len(docs),
	}).Info("request deleted")
	return nil
}
