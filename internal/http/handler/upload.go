package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"lattesdocs/internal/attachment"
	"lattesdocs/internal/model"
	"lattesdocs/internal/repository"
	"lattesdocs/internal/service"
)

// requestSummary is what the upload page shows. Contact data stays out.
type requestSummary struct {
	PublicID  string       `json:"public_id"`
	FullName  string       `json:"full_name"`
	Goal      string       `json:"goal,omitempty"`
	Deadline  *time.Time   `json:"deadline,omitempty"`
	Status    model.Status `json:"status"`
	Finalized bool         `json:"finalized"`
	CreatedAt time.Time    `json:"created_at"`
}

type docTypeOption struct {
	Value model.DocType `json:"value"`
	Label string        `json:"label"`
}

type uploadViewResponse struct {
	Request   requestSummary   `json:"request"`
	Documents []model.Document `json:"documents"`
	DocTypes  []docTypeOption  `json:"doc_types"`
	Notice    string           `json:"notice,omitempty"`
	Error     string           `json:"error,omitempty"`
}

func docTypeOptions() []docTypeOption {
	out := make([]docTypeOption, 0, len(model.DocTypes))
	for _, t := range model.DocTypes {
		out = append(out, docTypeOption{Value: t, Label: t.Label()})
	}
	return out
}

// UploadView godoc
// @Summary      Upload page data
// @Description  The request summary with its documents, newest first.
// @Tags         documents
// @Produce      json
// @Param        publicID  path      string  true   "Public code"
// @Param        notice    query     string  false  "Message from a previous step"
// @Param        error     query     string  false  "Error from a previous step"
// @Success      200       {object}  uploadViewResponse
// @Failure      404       {object}  errorPayload
// @Router       /requests/{publicID}/upload [get]
func UploadView(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		req, err := svc.Get(ctx, c.Params("publicID"))
		if err != nil {
			return writeServiceError(c, err, "request not found")
		}

		docs, err := svc.ListDocuments(ctx, req.ID, repository.NewestFirst)
		if err != nil {
			return writeServiceError(c, err, "request not found")
		}
		if docs == nil {
			docs = []model.Document{}
		}

		return c.JSON(uploadViewResponse{
			Request: requestSummary{
				PublicID:  req.PublicID,
				FullName:  req.FullName,
				Goal:      req.Goal,
				Deadline:  req.Deadline,
				Status:    req.Status,
				Finalized: req.Finalized(),
				CreatedAt: req.CreatedAt,
			},
			Documents: docs,
			DocTypes:  docTypeOptions(),
			Notice:    c.Query("notice"),
			Error:     c.Query("error"),
		})
	}
}

// UploadDocument godoc
// @Summary      Upload a document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        publicID     path      string  true   "Public code"
// @Param        file         formData  file    true   "Document file"
// @Param        doc_type     formData  string  true   "Document category"
// @Param        description  formData  string  false  "Short description"
// @Success      201          {object}  model.Document
// @Failure      400          {object}  errorPayload
// @Failure      404          {object}  errorPayload
// @Failure      413          {object}  errorPayload
// @Router       /requests/{publicID}/documents [post]
func UploadDocument(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = attachment.DefaultMimeType
		}

		doc, err := svc.AddDocument(c.UserContext(), c.Params("publicID"), service.UploadInput{
			DocType:     c.FormValue("doc_type"),
			Description: c.FormValue("description"),
			Filename:    fh.Filename,
			Size:        fh.Size,
			ContentType: ct,
			Body:        f,
		})
		if err != nil {
			return writeServiceError(c, err, "request not found")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}
