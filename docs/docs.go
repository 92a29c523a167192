// Package docs registers the OpenAPI document served by the Swagger UI.
// The template below is maintained by hand alongside the handler
// annotations; regenerate with `swag init` when endpoints change.
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
        "/inference/parse-industry": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Inference"],
                "summary": "Suggest an industry for free text",
                "operationId": "parseIndustry",
                "parameters": [
                    {
                        "description": "Text to classify",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.ParseIndustryRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.ParseIndustryResponse"}},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/inference/classify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Inference"],
                "summary": "Classify an occupation description",
                "operationId": "classify",
                "parameters": [
                    {
                        "description": "Classification request",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.ClassifyRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/inference/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Inference"],
                "summary": "Classification runtime counters",
                "operationId": "inferenceStats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.StatsResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/taxonomy": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Taxonomy"],
                "summary": "Get the industry taxonomy",
                "operationId": "getTaxonomy",
                "parameters": [
                    {"type": "integer", "default": 3, "description": "Tree depth (1-3)", "name": "depth", "in": "query"},
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TaxonomyResponse"}},
                    "304": {"description": "Not Modified"}
                }
            }
        },
        "/users/{id}/industry": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Profiles"],
                "summary": "Get a user's stored industry profile",
                "operationId": "getUserIndustry",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Return 304 if ETag matches", "name": "If-None-Match", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "304": {"description": "Not Modified"},
                    "404": {"description": "Profile not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Profiles"],
                "summary": "Persist a user's industry classification",
                "operationId": "putUserIndustry",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Safe-retry key", "name": "Idempotency-Key", "in": "header"},
                    {
                        "description": "Classification to persist",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handlers.SaveProfileRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad request", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string", "example": "123e4567-e89b-12d3-a456-426614174000"},
                "code": {"type": "string", "example": "not_found"},
                "message": {"type": "string", "example": "resource not found"}
            }
        },
        "handlers.ParseIndustryRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string", "example": "做AI的"},
                "locked_category_id": {"type": "string", "example": "tech"}
            }
        },
        "handlers.Suggestion": {
            "type": "object",
            "properties": {
                "value": {"type": "string", "example": "tech-ai"},
                "label": {"type": "string", "example": "人工智能"},
                "confidence": {"type": "number", "example": 0.62},
                "reasoning": {"type": "string"}
            }
        },
        "handlers.ParseIndustryResponse": {
            "type": "object",
            "properties": {
                "primary": {"$ref": "#/definitions/handlers.Suggestion"},
                "alternatives": {"type": "array", "items": {"$ref": "#/definitions/handlers.Suggestion"}},
                "source": {"type": "string", "example": "seed"},
                "cached": {"type": "boolean"}
            }
        },
        "handlers.ClassifyRequest": {
            "type": "object",
            "properties": {
                "description": {"type": "string", "example": "量化基金做投研"},
                "occupation_id": {"type": "string"},
                "locked_category_id": {"type": "string"},
                "source": {"type": "string"}
            }
        },
        "handlers.StatsResponse": {
            "type": "object",
            "properties": {
                "cache_hits": {"type": "integer"},
                "cache_misses": {"type": "integer"},
                "cache_entries": {"type": "integer"},
                "profiles": {"type": "integer"},
                "by_source": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "handlers.SaveProfileRequest": {
            "type": "object",
            "required": ["raw", "category_id", "segment_id"],
            "properties": {
                "raw": {"type": "string", "example": "做AI的"},
                "category_id": {"type": "string", "example": "tech"},
                "segment_id": {"type": "string", "example": "tech-ai"},
                "niche_id": {"type": "string", "example": "tech-ai-application"},
                "confidence": {"type": "number", "example": 0.9},
                "source": {"type": "string", "example": "manual"}
            }
        },
        "handlers.TaxonomyResponse": {
            "type": "object",
            "properties": {
                "version": {"type": "string", "example": "2025-08"},
                "categories": {"type": "array", "items": {"type": "object"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Industry Inference API",
	Description:      "Tiered classification of free-text occupation descriptions into a three-level industry taxonomy.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
