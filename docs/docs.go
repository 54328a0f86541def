// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/bench_api/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "Apache 2.0",
            "url": "https://opensource.org/licenses/Apache-2.0"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/reports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "List stored benchmark reports",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/report.FileInfo"}}
                    }
                }
            }
        },
        "/reports/{name}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Get a benchmark report",
                "parameters": [
                    {"type": "string", "description": "report file name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/history/adapters": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "List adapters with recorded history",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}}
                }
            }
        },
        "/history/{adapter}/{metric}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["history"],
                "summary": "Metric time series for one adapter",
                "parameters": [
                    {"type": "string", "description": "adapter name", "name": "adapter", "in": "path", "required": true},
                    {"type": "string", "description": "metric name, e.g. p95_ms or mrr", "name": "metric", "in": "path", "required": true},
                    {"type": "string", "description": "lookback window as a Go duration, default 168h", "name": "since", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/history.Point"}}
                    },
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "report.FileInfo": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "size": {"type": "integer"},
                "modified": {"type": "string"}
            }
        },
        "history.Point": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "timestamp": {"type": "string"},
                "value": {"type": "number"},
                "scale": {"type": "string"},
                "concurrency": {"type": "integer"}
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
	Title:            "kb-bench Results API",
	Description:      "Read-only access to benchmark reports and per-adapter metric history",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
