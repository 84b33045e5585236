// Package docs registers the OpenAPI description served under /swagger.
// It keeps the layout swag uses so the UI handler can load it by name.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Pings the database.",
                "produces": ["application/json"],
                "tags": ["ops"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "tags": ["ops"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/lookup": {
            "post": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["requests"],
                "summary": "Find a request by code and email",
                "parameters": [
                    {"description": "Code and email", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.lookupBody"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.lookupResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/requests": {
            "post": {
                "description": "Validates the intake form and assigns a public code.",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["requests"],
                "summary": "Open a request",
                "parameters": [
                    {"description": "Intake form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.createRequestBody"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.createRequestResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/requests/{publicID}/documents": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Upload a document",
                "parameters": [
                    {"type": "string", "description": "Public code", "name": "publicID", "in": "path", "required": true},
                    {"type": "file", "description": "Document file", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Document category", "name": "doc_type", "in": "formData", "required": true},
                    {"type": "string", "description": "Short description", "name": "description", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Document"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/requests/{publicID}/finalize": {
            "post": {
                "description": "Emails the documents to the office and a confirmation to the customer,\nthen redirects to the thank-you page. On a send failure it redirects\nback to the upload page with the reason in the error query.",
                "tags": ["requests"],
                "summary": "Finalize a request",
                "parameters": [
                    {"type": "string", "description": "Public code", "name": "publicID", "in": "path", "required": true}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/requests/{publicID}/upload": {
            "get": {
                "description": "The request summary with its documents, newest first.",
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Upload page data",
                "parameters": [
                    {"type": "string", "description": "Public code", "name": "publicID", "in": "path", "required": true},
                    {"type": "string", "description": "Message from a previous step", "name": "notice", "in": "query"},
                    {"type": "string", "description": "Error from a previous step", "name": "error", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.uploadViewResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorPayload"}}
                }
            }
        },
        "/thank-you": {
            "get": {
                "produces": ["application/json"],
                "tags": ["requests"],
                "summary": "Confirmation after finalize",
                "parameters": [
                    {"type": "string", "description": "Public code", "name": "code", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handler.createRequestBody": {
            "type": "object",
            "properties": {
                "deadline": {"type": "string", "example": "31/12/2026"},
                "email": {"type": "string"},
                "email_confirmation": {"type": "string"},
                "full_name": {"type": "string"},
                "goal": {"type": "string"},
                "notes": {"type": "string"},
                "phone": {"type": "string"}
            }
        },
        "handler.createRequestResponse": {
            "type": "object",
            "properties": {
                "public_id": {"type": "string"},
                "upload_url": {"type": "string"}
            }
        },
        "handler.docTypeOption": {
            "type": "object",
            "properties": {
                "label": {"type": "string"},
                "value": {"type": "string"}
            }
        },
        "handler.errorEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.errorPayload": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/handler.errorEnvelope"},
                "request_id": {"type": "string"}
            }
        },
        "handler.lookupBody": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "public_id": {"type": "string"}
            }
        },
        "handler.lookupResponse": {
            "type": "object",
            "properties": {
                "request": {"$ref": "#/definitions/model.Request"},
                "upload_url": {"type": "string"}
            }
        },
        "handler.requestSummary": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "deadline": {"type": "string"},
                "finalized": {"type": "boolean"},
                "full_name": {"type": "string"},
                "goal": {"type": "string"},
                "public_id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "handler.uploadViewResponse": {
            "type": "object",
            "properties": {
                "doc_types": {"type": "array", "items": {"$ref": "#/definitions/handler.docTypeOption"}},
                "documents": {"type": "array", "items": {"$ref": "#/definitions/model.Document"}},
                "error": {"type": "string"},
                "notice": {"type": "string"},
                "request": {"$ref": "#/definitions/handler.requestSummary"}
            }
        },
        "model.Document": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "doc_type": {"type": "string"},
                "file": {"$ref": "#/definitions/model.FileRef"},
                "id": {"type": "string"},
                "uploaded_at": {"type": "string"}
            }
        },
        "model.FileRef": {
            "type": "object",
            "properties": {
                "content_type": {"type": "string"},
                "filename": {"type": "string"},
                "size": {"type": "integer"}
            }
        },
        "model.Request": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "deadline": {"type": "string"},
                "email": {"type": "string"},
                "finalized_at": {"type": "string"},
                "full_name": {"type": "string"},
                "goal": {"type": "string"},
                "notes": {"type": "string"},
                "phone": {"type": "string"},
                "public_id": {"type": "string"},
                "status": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Lattes Documents API",
	Description:      "Collects the supporting documents of a Lattes curriculum request and delivers them by email.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
