// Package docs registers the OpenAPI description served at /swagger.
// Generated by swag; keep in sync with the handler annotations.
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
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Exchange owner credentials for a bearer token",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create the owner account (single-tenant)",
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}
            }
        },
        "/goals": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Schedule a goal across a recurrence range",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            }
        },
        "/days/{date}/goals": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "List one day's goal instances",
                "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/days/{date}/habits": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["habits"],
                "summary": "Get one day's habit record (carry-forward when today)",
                "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/days/{date}/routines": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["routines"],
                "summary": "List routines applicable to a day with completion state",
                "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/days/{date}/rings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rings"],
                "summary": "Get a day's activity-ring snapshot",
                "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/days/{date}/rings/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["rings"],
                "summary": "Recompute rings, persist the snapshot, dispatch closure notifications",
                "parameters": [{"type": "string", "name": "date", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/assistant/chat": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["assistant"],
                "summary": "Get the planning assistant's next reply",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Aura Wellness Engine API",
	Description:      "Sync backend for a personal wellness tracker: goals, habits, routines, and activity rings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
