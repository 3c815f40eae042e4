// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "TokenAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Type \"Token\" followed by a space and the key"
        }
    },
    "paths": {
        "/api/auth/registration/": {
            "post": {"tags": ["Auth"], "summary": "Register a user and return its token",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
        },
        "/api/auth/login/": {
            "post": {"tags": ["Auth"], "summary": "Log in with email and password",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}}
        },
        "/api/auth/logout/": {
            "post": {"tags": ["Auth"], "summary": "Invalidate the caller's token", "security": [{"TokenAuth": []}],
                "responses": {"204": {"description": "No Content"}}}
        },
        "/api/email-check/": {
            "get": {"tags": ["Users"], "summary": "Look a user up by email", "security": [{"TokenAuth": []}],
                "parameters": [{"name": "email", "in": "query", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Missing email"}, "404": {"description": "Unknown email"}}}
        },
        "/api/users/": {
            "get": {"tags": ["Users"], "summary": "List user profiles", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}/": {
            "get": {"tags": ["Users"], "summary": "Read a user profile", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/api/auth/profiles/": {
            "get": {"tags": ["Users"], "summary": "List user profiles", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/auth/profiles/{id}/": {
            "get": {"tags": ["Users"], "summary": "Read a user profile", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/api/boards/": {
            "get": {"tags": ["Boards"], "summary": "List the caller's boards", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Boards"], "summary": "Create a board owned by the caller", "security": [{"TokenAuth": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
        },
        "/api/boards/{id}/": {
            "get": {"tags": ["Boards"], "summary": "Board with members and tasks", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not a member"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["Boards"], "summary": "Update title, description or members", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not a member"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["Boards"], "summary": "Delete a board (owner only)", "security": [{"TokenAuth": []}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Not the owner"}, "404": {"description": "Not found"}}}
        },
        "/api/tasks/": {
            "get": {"tags": ["Tasks"], "summary": "Tasks of the caller's boards", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Tasks"], "summary": "Create a task", "security": [{"TokenAuth": []}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}, "403": {"description": "Not a member"}}}
        },
        "/api/tasks/assigned-to-me/": {
            "get": {"tags": ["Tasks"], "summary": "Tasks assigned to the caller", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/tasks/reviewing/": {
            "get": {"tags": ["Tasks"], "summary": "Tasks the caller reviews", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}}}
        },
        "/api/tasks/{id}/": {
            "get": {"tags": ["Tasks"], "summary": "Read a task", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["Tasks"], "summary": "Partially update a task", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}, "403": {"description": "Forbidden"}}},
            "delete": {"tags": ["Tasks"], "summary": "Delete a task (board owner only)", "security": [{"TokenAuth": []}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/api/tasks/{id}/comments/": {
            "get": {"tags": ["Comments"], "summary": "List comments of a task", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Comments"], "summary": "Add a comment", "security": [{"TokenAuth": []}],
                "responses": {"201": {"description": "Created"}}}
        },
        "/api/tasks/{id}/comments/{comment_id}/": {
            "get": {"tags": ["Comments"], "summary": "Read a comment of the task", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not a member"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["Comments"], "summary": "Edit a comment of the task (author only)", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}, "403": {"description": "Not the author"}}},
            "delete": {"tags": ["Comments"], "summary": "Delete a comment of the task", "security": [{"TokenAuth": []}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/api/comments/{id}/": {
            "get": {"tags": ["Comments"], "summary": "Read a comment", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Not a member"}, "404": {"description": "Not found"}}},
            "patch": {"tags": ["Comments"], "summary": "Edit a comment (author only)", "security": [{"TokenAuth": []}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}, "403": {"description": "Not the author"}}},
            "delete": {"tags": ["Comments"], "summary": "Delete a comment", "security": [{"TokenAuth": []}],
                "responses": {"204": {"description": "No Content"}, "403": {"description": "Forbidden"}}}
        },
        "/api/healthz": {
            "get": {"tags": ["Health"], "summary": "Liveness and database ping",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Database down"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "KanMind API",
	Description:      "Boards, tasks and comments for small teams.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
