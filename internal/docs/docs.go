// Package docs registers the generated swagger specification.
// Code generated by swag; edits belong in the handler annotations.
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
        "/portfolio": {
            "get": {
                "produces": ["application/json"],
                "tags": ["portfolio"],
                "summary": "Get portfolio",
                "responses": {"200": {"description": "Portfolio snapshot"}}
            }
        },
        "/portfolio/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["portfolio"],
                "summary": "Reset portfolio",
                "responses": {"200": {"description": "Portfolio after reset"}}
            }
        },
        "/trades": {
            "get": {
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Get trade history",
                "responses": {"200": {"description": "Paginated trades"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Execute buy",
                "responses": {
                    "201": {"description": "Executed trade and updated portfolio"},
                    "422": {"description": "Trade blocked by risk controls"}
                }
            }
        },
        "/trades/validate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Validate trade",
                "responses": {"200": {"description": "Violation list"}}
            }
        },
        "/positions/{id}/sell": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Sell position",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "201": {"description": "Executed trade and updated portfolio"},
                    "404": {"description": "Position not found"},
                    "422": {"description": "Trade blocked by risk controls"}
                }
            }
        },
        "/risk/settings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Get risk settings",
                "responses": {"200": {"description": "Current settings"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Update risk settings",
                "responses": {"200": {"description": "Updated settings"}}
            }
        },
        "/risk/settings/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Reset risk settings",
                "responses": {"200": {"description": "Default settings"}}
            }
        },
        "/risk/usage": {
            "get": {
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Get daily usage",
                "responses": {"200": {"description": "Daily counters"}}
            }
        },
        "/quotes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["quotes"],
                "summary": "Get quotes",
                "parameters": [{"type": "string", "name": "symbols", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "Quotes"},
                    "502": {"description": "Provider unavailable"}
                }
            }
        },
        "/progress": {
            "get": {
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Get progress",
                "responses": {"200": {"description": "Current progress"}}
            }
        },
        "/progress/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["progress"],
                "summary": "Reset progress",
                "responses": {"200": {"description": "Progress after reset"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Papertrade API",
	Description:      "Papertrade is an educational paper-trading backend: a simulated portfolio with virtual cash, configurable risk-control guardrails, and a market-data proxy.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
