// Package docs registers the generated swagger spec with swag.
// Regenerate with: swag init -g cmd/server/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/events": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "parameters": [
                    {"type": "string", "name": "date", "in": "query"},
                    {"type": "string", "name": "mode", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "data contains events and pagination"},
                    "400": {"description": "error.code: bad_request"},
                    "500": {"description": "error.code: internal_error"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Create a new event",
                "responses": {
                    "201": {"description": "data contains the created event"},
                    "400": {"description": "error.code: bad_request"},
                    "409": {"description": "error.code: conflict (duplicate slug)"},
                    "500": {"description": "error.code: internal_error"}
                }
            }
        },
        "/events/{slug}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event by slug",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data contains the event"},
                    "404": {"description": "error.code: not_found"},
                    "500": {"description": "error.code: internal_error"}
                }
            }
        },
        "/events/{eventID}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Update an event",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data contains the updated event"},
                    "400": {"description": "error.code: bad_request"},
                    "404": {"description": "error.code: not_found"},
                    "409": {"description": "error.code: conflict (duplicate slug)"},
                    "500": {"description": "error.code: internal_error"}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Delete an event",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data contains a confirmation message"},
                    "404": {"description": "error.code: not_found"},
                    "500": {"description": "error.code: internal_error"}
                }
            }
        },
        "/events/{eventID}/bookings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List bookings for an event",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data contains bookings and pagination"},
                    "404": {"description": "error.code: not_found (event does not exist)"},
                    "500": {"description": "error.code: internal_error"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Book a spot at an event",
                "parameters": [
                    {"type": "string", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "data contains the created booking"},
                    "400": {"description": "error.code: bad_request (invalid email)"},
                    "404": {"description": "error.code: not_found (event does not exist)"},
                    "500": {"description": "error.code: internal_error"}
                }
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
	Title:            "eventhub API",
	Description:      "Event listings and bookings service",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
