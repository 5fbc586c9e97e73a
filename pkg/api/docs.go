package api

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
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Health check and dataset summary",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}}}
            }
        },
        "/encode": {
            "get": {
                "tags": ["mapcode"],
                "summary": "Encode a coordinate",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "lat", "in": "query", "required": true, "type": "number"},
                    {"name": "lon", "in": "query", "required": true, "type": "number"},
                    {"name": "territory", "in": "query", "type": "string"},
                    {"name": "precision", "in": "query", "type": "integer", "minimum": 0, "maximum": 8},
                    {"name": "alphabet", "in": "query", "type": "string"},
                    {"name": "shortest", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.EncodeResponse"}},
                    "400": {"description": "Bad request"},
                    "404": {"description": "Unknown territory"}
                }
            }
        },
        "/decode": {
            "get": {
                "tags": ["mapcode"],
                "summary": "Decode a mapcode",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "code", "in": "query", "required": true, "type": "string"},
                    {"name": "context", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.DecodeResponse"}},
                    "400": {"description": "Malformed mapcode"},
                    "404": {"description": "Unknown territory"},
                    "422": {"description": "Mapcode does not decode"}
                }
            }
        },
        "/parse": {
            "get": {
                "tags": ["mapcode"],
                "summary": "Check the format of a mapcode",
                "produces": ["application/json"],
                "parameters": [{"name": "code", "in": "query", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ParseResponse"}}}
            }
        },
        "/territories/{iso}": {
            "get": {
                "tags": ["territory"],
                "summary": "Resolve a territory code",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "iso", "in": "path", "required": true, "type": "string"},
                    {"name": "context", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TerritoryResponse"}},
                    "404": {"description": "Unknown territory"}
                }
            }
        },
        "/borders": {
            "get": {
                "tags": ["territory"],
                "summary": "Report whether a coordinate is near several borders",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "lat", "in": "query", "required": true, "type": "number"},
                    {"name": "lon", "in": "query", "required": true, "type": "number"},
                    {"name": "territory", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/api.BordersResponse"}}}
            }
        },
        "/batch": {
            "get": {
                "tags": ["batch"],
                "summary": "List batch jobs, newest first",
                "parameters": [{"name": "limit", "in": "query", "type": "integer"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["batch"],
                "summary": "Start a batch encode",
                "consumes": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.BatchRequest"}}],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/api.BatchAccepted"}},
                    "400": {"description": "Bad request"},
                    "413": {"description": "Too many points"}
                }
            }
        },
        "/batch/{id}": {
            "get": {
                "tags": ["batch"],
                "summary": "Get a batch job",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        }
    },
    "definitions": {
        "api.HealthResponse": {"type": "object", "properties": {
            "status": {"type": "string"}, "territories": {"type": "integer"}, "records": {"type": "integer"}}},
        "api.Mapcode": {"type": "object", "properties": {
            "territory": {"type": "string"}, "code": {"type": "string"}, "full": {"type": "string"}, "alphabet": {"type": "string"}}},
        "api.EncodeResponse": {"type": "object", "properties": {
            "lat": {"type": "number"}, "lon": {"type": "number"}, "precision": {"type": "integer"},
            "max_error_meters": {"type": "number"},
            "mapcodes": {"type": "array", "items": {"$ref": "#/definitions/api.Mapcode"}}}},
        "api.DecodeResponse": {"type": "object", "properties": {
            "lat": {"type": "number"}, "lon": {"type": "number"}, "territory": {"type": "string"}, "code": {"type": "string"}}},
        "api.ParseResponse": {"type": "object", "properties": {
            "valid": {"type": "boolean"}, "incomplete": {"type": "boolean"}, "error": {"type": "string"},
            "territory": {"type": "string"}, "mapcode": {"type": "string"}, "extension": {"type": "string"}}},
        "api.TerritoryResponse": {"type": "object", "properties": {
            "id": {"type": "integer"}, "code": {"type": "string"}, "iso_name": {"type": "string"}, "name": {"type": "string"},
            "parent": {"type": "string"}, "has_subdivisions": {"type": "boolean"}}},
        "api.BordersResponse": {"type": "object", "properties": {
            "territory": {"type": "string"}, "multiple_borders_nearby": {"type": "boolean"}}},
        "api.BatchRequest": {"type": "object", "properties": {
            "points": {"type": "array", "items": {"type": "object", "properties": {"lat": {"type": "number"}, "lon": {"type": "number"}}}},
            "territory": {"type": "string"}, "precision": {"type": "integer"}, "shortest": {"type": "boolean"}}},
        "api.BatchAccepted": {"type": "object", "properties": {"id": {"type": "string"}, "status": {"type": "string"}}}
    }
}`

// SwaggerInfo holds the exported Swagger info of the API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Mapcode REST API",
	Description:      "Encode coordinates to mapcodes and decode them back.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
