// Package docs registers the OpenAPI document of the service with swag.
// Operation annotations live on the handlers.
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
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Create an account", "responses": {"201": {"description": "Created"}, "409": {"description": "Email already registered"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Sign in", "responses": {"200": {"description": "Token and account"}, "401": {"description": "Invalid credentials"}}}},
        "/healthz": {"get": {"tags": ["health"], "summary": "Database health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Database unreachable"}}}},
        "/api/v1/me": {"get": {"tags": ["auth"], "summary": "Current account", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/opd": {"get": {"tags": ["opd"], "summary": "List OPD ordered by name", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/tree-types": {"get": {"tags": ["registrations"], "summary": "Species offered per category", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/registrations": {"post": {"tags": ["registrations"], "summary": "Submit a tree planting registration", "consumes": ["application/json", "multipart/form-data"], "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid input"}, "413": {"description": "Photo too large"}}}},
        "/api/v1/contribution": {"get": {"tags": ["contribution"], "summary": "Per-OPD contribution report", "parameters": [{"name": "all", "in": "query", "type": "boolean"}], "responses": {"200": {"description": "Loaded report"}, "503": {"description": "Report could not be loaded"}}}},
        "/api/v1/contribution/chart": {"get": {"tags": ["contribution"], "summary": "Bar chart of trees planted per contributing OPD", "responses": {"200": {"description": "OK"}, "503": {"description": "Report could not be loaded"}}}},
        "/api/v1/contribution/{id}": {"get": {"tags": ["contribution"], "summary": "Contribution of one OPD", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown OPD"}}}},
        "/api/v1/summary": {"get": {"tags": ["dashboard"], "summary": "Program totals for the landing page", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/map": {"get": {"tags": ["map"], "summary": "Planting locations as GeoJSON", "produces": ["application/geo+json"], "responses": {"200": {"description": "FeatureCollection"}}}},
        "/api/v1/gallery": {"get": {"tags": ["registrations"], "summary": "Latest registrations with a photo", "responses": {"200": {"description": "OK"}}}},
        "/api/v1/site-settings/{key}": {"get": {"tags": ["site"], "summary": "Hero or logo block", "parameters": [{"name": "key", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/admin/dashboard": {"get": {"tags": ["admin"], "summary": "Admin overview with per-OPD progress", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/admin/registrations": {"get": {"tags": ["admin"], "summary": "Registrations, newest first", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/admin/registrations/{id}": {"get": {"tags": ["admin"], "summary": "One registration with its OPD", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}},
        "/api/v1/admin/registrations/stats": {"get": {"tags": ["admin"], "summary": "Headline figures of the registrations panel", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/admin/registrations/trend": {"get": {"tags": ["admin"], "summary": "Registrations and trees per period", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/admin/registrations/export.xlsx": {"get": {"tags": ["admin"], "summary": "Export registrations to Excel", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "Workbook"}, "404": {"description": "No data"}}}},
        "/api/v1/admin/registrations/export.csv": {"get": {"tags": ["admin"], "summary": "Export registrations to CSV", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "CSV"}, "404": {"description": "No data"}}}},
        "/api/v1/admin/opd": {
            "get": {"tags": ["admin"], "summary": "List OPD", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["admin"], "summary": "Create an OPD", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate name"}}}
        },
        "/api/v1/admin/opd/{id}": {
            "put": {"tags": ["admin"], "summary": "Update an OPD", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}, "409": {"description": "Duplicate name"}}},
            "delete": {"tags": ["admin"], "summary": "Delete an OPD", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}}
        },
        "/api/v1/admin/global-settings": {
            "get": {"tags": ["admin"], "summary": "Display overrides", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["admin"], "summary": "Set several display overrides at once", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/v1/admin/global-settings/{key}": {"put": {"tags": ["admin"], "summary": "Set one display override", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown key"}}}},
        "/api/v1/admin/site-settings/{key}": {"put": {"tags": ["admin"], "summary": "Save the hero or logo block", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid block"}}}},
        "/api/v1/admin/uploads": {"post": {"tags": ["admin"], "summary": "Upload an image for the hero or logo block", "security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "responses": {"201": {"description": "Stored"}}}},
        "/api/v1/admin/users": {"get": {"tags": ["admin"], "summary": "List accounts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/v1/admin/users/{id}/role": {"put": {"tags": ["admin"], "summary": "Change the role of an account", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Bank Data Pohon API",
	Description:      "Tree planting registration and OPD contribution reporting for Program Agro Mopomulo.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
