package handler

import (
	"github.com/gofiber/fiber/v2"

	"lattesdocs/internal/model"
	"lattesdocs/internal/publicid"
	"lattesdocs/internal/service"
)

type createRequestBody struct {
	FullName          string `json:"full_name" form:"full_name"`
	Email             string `json:"email" form:"email"`
	EmailConfirmation string `json:"email_confirmation" form:"email_confirmation"`
	Phone             string `json:"phone" form:"phone"`
	Goal              string `json:"goal" form:"goal"`
	Deadline          string `json:"deadline" form:"deadline" example:"31/12/2026"`
	Notes             string `json:"notes" form:"notes"`
}

type createRequestResponse struct {
	PublicID  string `json:"public_id"`
	UploadURL string `json:"upload_url"`
}

type lookupBody struct {
	PublicID string `json:"public_id" form:"public_id"`
	Email    string `json:"email" form:"email"`
}

type lookupResponse struct {
	Request   *model.Request `json:"request"`
	UploadURL string         `json:"upload_url"`
}

func uploadURL(publicID string) string {
	return "/requests/" + publicID + "/upload"
}

// CreateRequest godoc
// @Summary      Open a request
// @Description  Validates the intake form and assigns a public code.
// @Tags         requests
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      createRequestBody  true  "Intake form"
// @Success      201   {object}  createRequestResponse
// @Failure      400   {object}  errorPayload
// @Failure      500   {object}  errorPayload
// @Router       /requests [post]
func CreateRequest(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body createRequestBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		req, err := svc.Create(c.UserContext(), service.CreateRequestInput{
			FullName:          body.FullName,
			Email:             body.Email,
			EmailConfirmation: body.EmailConfirmation,
			Phone:             body.Phone,
			Goal:              body.Goal,
			Deadline:          body.Deadline,
			Notes:             body.Notes,
		})
		if err != nil {
			return writeServiceError(c, err, "request not found")
		}

		next := uploadURL(req.PublicID)
		c.Location(next)
		return c.Status(fiber.StatusCreated).JSON(createRequestResponse{PublicID: req.PublicID, UploadURL: next})
	}
}

// Lookup godoc
// @Summary      Find a request by code and email
// @Tags         requests
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      lookupBody  true  "Code and email"
// @Success      200   {object}  lookupResponse
// @Failure      404   {object}  errorPayload
// @Router       /lookup [post]
func Lookup(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body lookupBody
		if err := c.BodyParser(&body); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		req, err := svc.Lookup(c.UserContext(), body.PublicID, body.Email)
		if err != nil {
			return writeServiceError(c, err, lookupNotFoundMessage)
		}
		return c.JSON(lookupResponse{Request: req, UploadURL: uploadURL(req.PublicID)})
	}
}

// ThankYou godoc
// @Summary      Confirmation after finalize
// @Tags         requests
// @Produce      json
// @Param        code  query     string  true  "Public code"
// @Success      200   {object}  map[string]string
// @Router       /thank-you [get]
func ThankYou() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"public_id": publicid.Normalize(c.Query("code"))})
	}
}
