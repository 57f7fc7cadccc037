// Package docs registers the OpenAPI document served at /swagger/doc.json.
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
        "/nominations": {
            "post": {
                "description": "Validates the nomination form, stores it as pending and returns its ID",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Nominations"],
                "summary": "Submit an award nomination",
                "parameters": [
                    {
                        "description": "Nomination form",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/validation.NominationForm"}
                    }
                ],
                "responses": {
                    "200": {"description": "Nomination stored", "schema": {"$ref": "#/definitions/models.NominationResponse"}},
                    "400": {"description": "Invalid body or failed validation", "schema": {"$ref": "#/definitions/models.NominationResponse"}},
                    "500": {"description": "Unexpected failure", "schema": {"$ref": "#/definitions/models.NominationResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/models.NominationResponse"}}
                }
            }
        },
        "/nominations/steps/{step}": {
            "post": {
                "description": "Runs only the rules of the given step (1-4) and returns labeled messages",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Nominations"],
                "summary": "Check one step of the nomination form",
                "parameters": [
                    {"type": "integer", "description": "Form step (1-4)", "name": "step", "in": "path", "required": true},
                    {
                        "description": "Partial nomination form",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/validation.NominationForm"}
                    }
                ],
                "responses": {
                    "200": {"description": "Step is valid", "schema": {"$ref": "#/definitions/models.NominationResponse"}},
                    "400": {"description": "Unknown step or failed validation", "schema": {"$ref": "#/definitions/models.NominationResponse"}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "description": "Exchanges reviewer credentials for a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Reviewer login",
                "parameters": [
                    {
                        "description": "Reviewer credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.AdminLoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/admin/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Revokes the bearer token used for this request",
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Reviewer logout",
                "responses": {
                    "200": {"description": "Token revoked", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/admin/nominations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Lists nominations by review status, newest first",
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List nominations",
                "parameters": [
                    {"type": "string", "default": "pending", "description": "pending, approved or rejected", "name": "status", "in": "query"},
                    {"type": "integer", "default": 50, "description": "Max results (1-100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Nominations", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        },
        "/admin/nominations/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Get a nomination",
                "parameters": [
                    {"type": "string", "description": "Nomination ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Nomination", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.APIResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/models.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.APIError": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "field": {"type": "string"},
                "type": {"type": "string"}
            }
        },
        "models.APIResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "data": {},
                "error": {"$ref": "#/definitions/models.APIError"},
                "message": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "models.AdminLoginRequest": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "minLength": 8, "example": "securePassword123"},
                "username": {"type": "string", "example": "reviewer"}
            }
        },
        "models.NominationResponse": {
            "type": "object",
            "properties": {
                "details": {"type": "string"},
                "error": {"type": "string"},
                "message": {"type": "string"},
                "nominationId": {"type": "string"},
                "success": {"type": "boolean"}
            }
        },
        "validation.PersonInfo": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "organization": {"type": "string"},
                "position": {"type": "string"}
            }
        },
        "validation.NominationForm": {
            "type": "object",
            "properties": {
                "agreedToTerms": {"type": "boolean"},
                "awardCategory": {"type": "string", "enum": ["Excellence", "Lifetime", "Innovation", "Service"]},
                "awardId": {"type": "string"},
                "nominationText": {"type": "string"},
                "nominatorInfo": {"$ref": "#/definitions/validation.PersonInfo"},
                "nomineeInfo": {"$ref": "#/definitions/validation.PersonInfo"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT Authorization header using the Bearer scheme.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Awards Nominations API",
	Description:      "Public nomination intake and reviewer console API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
