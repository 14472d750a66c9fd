// Package swagger holds the OpenAPI document served under /swagger.
package swagger

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
    "securityDefinitions": {
        "ApiKeyAuth": {
            "type": "apiKey",
            "name": "X-API-Key",
            "in": "header"
        }
    },
    "security": [{"ApiKeyAuth": []}],
    "paths": {
        "/validations/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "Health",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/validations/profiles": {
            "get": {
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "List Profiles",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/validations/profiles/{profile}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "Get Profile",
                "parameters": [
                    {"type": "string", "description": "Profile name", "name": "profile", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profile.Profile"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/validations/{profile}": {
            "post": {
                "description": "Reconciles the local dataset of a profile against the remote API. Returns 200 when every record matched and 422 when at least one did not.",
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "Run Validation",
                "parameters": [
                    {"type": "string", "description": "Profile name (e.g. 'assets')", "name": "profile", "in": "path", "required": true},
                    {"type": "integer", "description": "Number of remote records to validate (0 = all)", "name": "records", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "page_size", "in": "query"},
                    {"type": "boolean", "description": "Upload reports to object storage", "name": "upload", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "All records matched", "schema": {"$ref": "#/definitions/report.Result"}},
                    "400": {"description": "Configuration error", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Unknown profile", "schema": {"$ref": "#/definitions/error"}},
                    "409": {"description": "Data integrity error", "schema": {"$ref": "#/definitions/error"}},
                    "422": {"description": "Mismatches found", "schema": {"$ref": "#/definitions/report.Result"}},
                    "502": {"description": "Remote or database unreachable", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/validations/{profile}/reports": {
            "get": {
                "produces": ["application/json"],
                "tags": ["validations"],
                "summary": "List Reports",
                "parameters": [
                    {"type": "string", "description": "Profile name", "name": "profile", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Storage not configured", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/validations/{profile}/reports/{file}": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["validations"],
                "summary": "Download Report",
                "parameters": [
                    {"type": "string", "description": "Profile name", "name": "profile", "in": "path", "required": true},
                    {"type": "string", "description": "Report file name", "name": "file", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "profile.Profile": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "sql_file": {"type": "string"},
                "primary_key": {"type": "string"},
                "endpoint": {"type": "string"},
                "mapping_file": {"type": "string"},
                "response_primary_key": {"type": "string"},
                "records_path": {"type": "string"},
                "total_path": {"type": "string"},
                "page_size": {"type": "integer"},
                "target_records": {"type": "integer"}
            }
        },
        "reconcile.RunAggregate": {
            "type": "object",
            "properties": {
                "total_validated": {"type": "integer"},
                "total_pass": {"type": "integer"},
                "total_fail": {"type": "integer"},
                "failures": {"type": "object", "additionalProperties": {"type": "string"}},
                "failure_keys": {"type": "array", "items": {"type": "string"}},
                "pages": {"type": "integer"},
                "offset": {"type": "integer"},
                "overall_pass": {"type": "boolean"}
            }
        },
        "report.Report": {
            "type": "object",
            "properties": {
                "kind": {"type": "string"},
                "path": {"type": "string"},
                "object": {"type": "string"},
                "rows": {"type": "integer"}
            }
        },
        "report.Result": {
            "type": "object",
            "properties": {
                "run_id": {"type": "string"},
                "profile": {"type": "string"},
                "aggregate": {"$ref": "#/definitions/reconcile.RunAggregate"},
                "duration_ns": {"type": "integer"},
                "reports": {"type": "array", "items": {"$ref": "#/definitions/report.Report"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Data Reconciler API",
	Description:      "Reconciles local SQL datasets against a paginated REST API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
