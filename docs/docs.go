// Package docs registers the OpenAPI document served at /swagger/*.
// Regenerate with `swag init -g cmd/server/main.go`.
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
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/refresh": {"post": {"tags": ["auth"], "summary": "Rotate the refresh token", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/auth/logout": {"post": {"tags": ["auth"], "summary": "Logout from every session", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/auth/me": {"get": {"tags": ["auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/auth/admin-check": {"get": {"tags": ["auth"], "summary": "Verify the caller is a global admin", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/restaurants": {
            "get": {"tags": ["restaurants"], "summary": "List active restaurants the caller owns or works at", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["restaurants"], "summary": "Create a restaurant owned by the caller", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/restaurants/archived": {"get": {"tags": ["restaurants"], "summary": "List archived restaurants", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/restaurants/{id}": {
            "get": {"tags": ["restaurants"], "summary": "Get a restaurant", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "patch": {"tags": ["restaurants"], "summary": "Update a restaurant", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}},
            "delete": {"tags": ["restaurants"], "summary": "Archive a restaurant", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/restaurants/{id}/members": {"get": {"tags": ["members"], "summary": "List restaurant members", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/restaurants/{id}/members/{userId}": {
            "patch": {"tags": ["members"], "summary": "Change a member's role", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}},
            "delete": {"tags": ["members"], "summary": "Remove a member", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}
        },
        "/restaurants/{id}/invites": {
            "get": {"tags": ["invites"], "summary": "List pending invites", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["invites"], "summary": "Invite a staff member", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/invites/accept": {"post": {"tags": ["invites"], "summary": "Accept an invite", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Resmatic API",
	Description:      "Restaurant SaaS core: tenant RBAC, staff invites and refresh-token sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
