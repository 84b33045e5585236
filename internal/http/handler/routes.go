package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"lattesdocs/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, requests service.RequestService, finalize service.FinalizeService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/requests", CreateRequest(requests))
	app.Post("/lookup", Lookup(requests))
	app.Get("/thank-you", ThankYou())

	r := app.Group("/requests/:publicID")
	r.Get("/upload", UploadView(requests))
	r.Post("/documents", UploadDocument(requests))
	r.Post("/finalize", Finalize(finalize))
	r.Get("/finalize", FinalizeRedirect(requests))
}
