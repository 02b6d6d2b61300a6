// Package docs registers the OpenAPI description served under /swagger.
// Keep it in step with the handler annotations.
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
        "/quotes": {
            "get": {
                "description": "Newest first. q filters text and author ignoring case and diacritics.",
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "List quotes",
                "parameters": [
                    {"type": "string", "description": "Search filter", "name": "q", "in": "query"},
                    {"type": "integer", "description": "Page size, 0 for all", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Rows to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Quote"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Add a quote",
                "parameters": [
                    {"description": "Quote", "name": "quote", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.quoteRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/domain.Quote"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/quotes/random": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Pick a random quote",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Quote"}},
                    "204": {"description": "Collection is empty"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/quotes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Get a quote",
                "parameters": [
                    {"type": "string", "description": "Quote ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Quote"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "put": {
                "description": "Replaces text and author. Id and date added are kept.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Edit a quote",
                "parameters": [
                    {"type": "string", "description": "Quote ID", "name": "id", "in": "path", "required": true},
                    {"description": "Quote", "name": "quote", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.quoteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Quote"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            },
            "delete": {
                "tags": ["quotes"],
                "summary": "Delete a quote",
                "parameters": [
                    {"type": "string", "description": "Quote ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/widget/placeholder": {
            "get": {
                "produces": ["application/json"],
                "tags": ["widget"],
                "summary": "Loading render",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WidgetEntry"}}
                }
            }
        },
        "/widget/snapshot": {
            "get": {
                "produces": ["application/json"],
                "tags": ["widget"],
                "summary": "Preview render",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WidgetEntry"}}
                }
            }
        },
        "/widget/timeline": {
            "get": {
                "description": "One entry, valid until the next local midnight.",
                "produces": ["application/json"],
                "tags": ["widget"],
                "summary": "Timeline render",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.WidgetTimeline"}}
                }
            }
        },
        "/widget/state": {
            "get": {
                "produces": ["application/json"],
                "tags": ["widget"],
                "summary": "Shared widget keys",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/services.WidgetState"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/widget/pin": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["widget"],
                "summary": "Pin a quote to the widget",
                "parameters": [
                    {"description": "Quote to pin", "name": "pin", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.pinRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/widget/refresh": {
            "post": {
                "tags": ["widget"],
                "summary": "Drop the pin and reload widgets",
                "responses": {
                    "204": {"description": "No Content"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/http.errorResponse"}}
                }
            }
        },
        "/widget/events": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["widget"],
                "summary": "Reload signals as server-sent events",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "domain.EntrySource": {
            "type": "string",
            "enum": ["pinned", "daily", "random", "empty", "placeholder"]
        },
        "domain.Quote": {
            "type": "object",
            "properties": {
                "author": {"type": "string"},
                "date_added": {"type": "string"},
                "id": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "domain.WidgetEntry": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "quote": {"$ref": "#/definitions/domain.Quote"},
                "source": {"$ref": "#/definitions/domain.EntrySource"}
            }
        },
        "domain.WidgetTimeline": {
            "type": "object",
            "properties": {
                "entries": {"type": "array", "items": {"$ref": "#/definitions/domain.WidgetEntry"}},
                "refresh_at": {"type": "string"}
            }
        },
        "http.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "quote not found"}
            }
        },
        "http.pinRequest": {
            "type": "object",
            "required": ["quote_id"],
            "properties": {
                "quote_id": {"type": "string"}
            }
        },
        "http.quoteRequest": {
            "type": "object",
            "required": ["author", "text"],
            "properties": {
                "author": {"type": "string", "example": "Mahatma Gandhi"},
                "text": {"type": "string", "example": "Bądź zmianą, którą chcesz widzieć w świecie."}
            }
        },
        "services.WidgetState": {
            "type": "object",
            "properties": {
                "daily_quote_id": {"type": "string"},
                "last_quote_date": {"type": "string"},
                "pinned_quote_id": {"type": "string"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Quote Widget Engine API",
	Description:      "Personal quote collection with a daily widget resolver.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
