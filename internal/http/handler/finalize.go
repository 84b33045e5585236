package handler

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"lattesdocs/internal/http/middleware"
	"lattesdocs/internal/notification"
	"lattesdocs/internal/publicid"
	"lattesdocs/internal/service"
)

const finalizeFailedMessage = "We could not send the email right now. Error: "

// Finalize godoc
// @Summary      Finalize a request
// @Description  Emails the documents to the office and a confirmation to the customer,
// @Description  then redirects to the thank-you page. On a send failure it redirects
// @Description  back to the upload page with the reason in the error query.
// @Tags         requests
// @Param        publicID  path  string  true  "Public code"
// @Success      303
// @Failure      404  {object}  errorPayload
// @Router       /requests/{publicID}/finalize [post]
func Finalize(fin service.FinalizeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := publicid.Normalize(c.Params("publicID"))

		res, err := fin.Finalize(c.UserContext(), code)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeServiceError(c, err, "request not found")
			}
			c.Locals(middleware.ErrorLocalKey, err)
			target := uploadURL(code) + "?error=" + url.QueryEscape(finalizeFailedMessage+failureReason(err))
			return c.Redirect(target, fiber.StatusSeeOther)
		}

		return c.Redirect("/thank-you?code="+url.QueryEscape(res.PublicID), fiber.StatusSeeOther)
	}
}

// FinalizeRedirect sends a plain GET back to the upload page without side effects.
func FinalizeRedirect(svc service.RequestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := svc.Get(c.UserContext(), c.Params("publicID"))
		if err != nil {
			return writeServiceError(c, err, "request not found")
		}
		return c.Redirect(uploadURL(req.PublicID), fiber.StatusSeeOther)
	}
}

// failureReason is the customer-facing part of a finalize failure. Provider
// bodies stay in the access log.
func failureReason(err error) string {
	kind := "notification"
	var fe *service.FinalizeError
	if errors.As(err, &fe) {
		kind = string(fe.Kind)
	}

	var de *notification.DispatchError
	switch {
	case errors.Is(err, notification.ErrNotConfigured):
		return "email delivery is not configured."
	case errors.Is(err, service.ErrNoInternalRecipient):
		return "no recipient is configured for the office email."
	case errors.As(err, &de) && de.StatusCode != 0:
		return fmt.Sprintf("%s email rejected by the provider (status %d).", kind, de.StatusCode)
	default:
		return fmt.Sprintf("%s email could not be sent.", kind)
	}
}
