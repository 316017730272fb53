// Package docs registers the OpenAPI document served under /swagger.
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
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Service health",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/api/v1/lines": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lines"],
                "summary": "List lines",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Lines"],
                "summary": "Create line",
                "parameters": [
                    {"name": "line", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LineRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/lines/detail": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lines"],
                "summary": "Whole subway network",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/v1/lines/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Lines"],
                "summary": "Line with its stations",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["Lines"],
                "summary": "Update line",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "line", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LineRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"}
                }
            },
            "delete": {
                "tags": ["Lines"],
                "summary": "Delete line",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/api/v1/lines/{id}/stations": {
            "post": {
                "consumes": ["application/json"],
                "tags": ["Lines"],
                "summary": "Add station to line",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"name": "station", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LineStationCreateRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/lines/{id}/stations/{stationId}": {
            "delete": {
                "tags": ["Lines"],
                "summary": "Remove station from line",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "stationId", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/stations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stations"],
                "summary": "List stations",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Stations"],
                "summary": "Create station",
                "parameters": [
                    {"name": "station", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.StationCreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/api/v1/stations/search": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Stations"],
                "summary": "Find station by name",
                "parameters": [
                    {"type": "string", "name": "name", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/v1/stations/{id}": {
            "delete": {
                "tags": ["Stations"],
                "summary": "Delete station",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        }
    },
    "definitions": {
        "dto.LineRequest": {
            "type": "object",
            "required": ["name", "start_time", "end_time", "interval_time"],
            "properties": {
                "name": {"type": "string"},
                "start_time": {"type": "string", "example": "05:30"},
                "end_time": {"type": "string", "example": "23:30"},
                "interval_time": {"type": "integer"},
                "bg_color": {"type": "string"}
            }
        },
        "dto.LineStationCreateRequest": {
            "type": "object",
            "required": ["station_id"],
            "properties": {
                "pre_station_id": {"type": "integer"},
                "station_id": {"type": "integer"},
                "distance": {"type": "integer"},
                "duration": {"type": "integer"}
            }
        },
        "dto.StationCreateRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Subway Admin API",
	Description:      "Administration of subway lines, stations and the line paths that connect them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
