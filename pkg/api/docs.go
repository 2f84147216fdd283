package api

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
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}}}
            }
        },
        "/encode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["text/plain"],
                "produces": ["application/json"],
                "tags": ["codec"],
                "summary": "Pack a team paste",
                "parameters": [
                    {"type": "string", "description": "hex or base64", "name": "format", "in": "query"},
                    {"description": "Team paste", "name": "body", "in": "body", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.EncodeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/decode": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["text/plain"],
                "produces": ["application/json"],
                "tags": ["codec"],
                "summary": "Unpack encoded records",
                "parameters": [
                    {"type": "string", "description": "hex or base64; detected when omitted", "name": "format", "in": "query"},
                    {"description": "Encoded records, one per line", "name": "body", "in": "body", "required": true, "schema": {"type": "string"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DecodeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/teams": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "List stored teams",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of teams", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Only teams containing this species", "name": "species", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.TeamResponse"}}}}
            },
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "consumes": ["text/plain"],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Store a team paste",
                "parameters": [{"description": "Team paste", "name": "body", "in": "body", "required": true, "schema": {"type": "string"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TeamResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/teams/{id}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Read a stored team",
                "parameters": [
                    {"type": "string", "description": "Team id", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "paste, hex or base64", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TeamResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            },
            "delete": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Delete a stored team",
                "parameters": [{"type": "string", "description": "Team id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        },
        "/dex/{category}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["dex"],
                "summary": "List a vocabulary table",
                "parameters": [{"type": "string", "description": "Category", "name": "category", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.DexEntry"}}}}
            }
        },
        "/dex/{category}/{name}": {
            "get": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["dex"],
                "summary": "Look up a name or code",
                "parameters": [
                    {"type": "string", "description": "Category", "name": "category", "in": "path", "required": true},
                    {"type": "string", "description": "Name or numeric code", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DexEntry"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.APIResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"type": "string"}
            }
        },
        "api.EncodeResponse": {
            "type": "object",
            "properties": {
                "format": {"type": "string"},
                "records": {"type": "integer"},
                "bytes": {"type": "integer"},
                "text": {"type": "string"},
                "ratio": {"type": "number"}
            }
        },
        "api.DecodeResponse": {
            "type": "object",
            "properties": {
                "format": {"type": "string"},
                "paste": {"type": "string"},
                "sets": {"type": "array", "items": {"type": "object"}}
            }
        },
        "api.TeamResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "created": {"type": "string"},
                "records": {"type": "integer"},
                "format": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "api.DexEntry": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "code": {"type": "integer"},
                "name": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "pokepack REST API",
	Description:      "Packs team pastes into 21-byte records and stores teams.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
