// Package docs registers the OpenAPI description served at /swagger.
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
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/courses/generate": {
            "post": {
                "description": "Builds twelve radial courses around the position, enriches them with elevation and addresses and returns the three most runnable.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["courses"],
                "summary": "Generate and rank running courses",
                "parameters": [
                    {"description": "Start position and round-trip distance in km", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CourseGenerationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CourseGenerationResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/models.FailureResponse"}},
                    "408": {"description": "Pipeline timeout", "schema": {"$ref": "#/definitions/models.FailureResponse"}},
                    "500": {"description": "Internal error", "schema": {"$ref": "#/definitions/models.FailureResponse"}},
                    "503": {"description": "AI service unavailable", "schema": {"$ref": "#/definitions/models.FailureResponse"}}
                }
            }
        },
        "/api/elevation": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["elevation"],
                "summary": "Look up elevations",
                "parameters": [
                    {"description": "Coordinates, at most 512", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.ElevationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ElevationResponse"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/elevation/single": {
            "get": {
                "produces": ["application/json"],
                "tags": ["elevation"],
                "summary": "Look up one elevation",
                "parameters": [
                    {"type": "number", "description": "Latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude", "name": "lon", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ElevationPoint"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/reverse-geocode": {
            "get": {
                "produces": ["application/json"],
                "tags": ["address"],
                "summary": "Resolve coordinates to an address",
                "parameters": [
                    {"type": "number", "description": "Latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude", "name": "lon", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AddressInfo"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/geocode": {
            "get": {
                "produces": ["application/json"],
                "tags": ["address"],
                "summary": "Search addresses",
                "parameters": [
                    {"type": "string", "description": "Free-text address", "name": "q", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Place"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/geolocation": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["geolocation"],
                "summary": "Estimate the caller's position",
                "parameters": [
                    {"description": "Optional wifi and cell tower hints", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/models.GeolocationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Position"}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "models.Coordinate": {
            "type": "object",
            "properties": {"lat": {"type": "number"}, "lon": {"type": "number"}}
        },
        "models.CourseGenerationRequest": {
            "type": "object",
            "required": ["latitude", "longitude"],
            "properties": {
                "latitude": {"type": "number", "maximum": 90, "minimum": -90},
                "longitude": {"type": "number", "maximum": 180, "minimum": -180},
                "distance": {"type": "number"},
                "distance_km": {"type": "number"}
            }
        },
        "models.ElevationAnalysis": {
            "type": "object",
            "properties": {"averageChange": {"type": "number"}, "totalAscent": {"type": "number"}, "totalDescent": {"type": "number"}}
        },
        "models.Scores": {
            "type": "object",
            "properties": {"elevation": {"type": "number"}, "overall": {"type": "number"}}
        },
        "models.Waypoint": {
            "type": "object",
            "properties": {"latitude": {"type": "number"}, "longitude": {"type": "number"}}
        },
        "models.CourseCard": {
            "type": "object",
            "properties": {
                "courseId": {"type": "integer"},
                "rank": {"type": "integer"},
                "name": {"type": "string"},
                "distance": {"type": "string"},
                "estimatedTime": {"type": "string"},
                "summary": {"type": "string"},
                "reason": {"type": "string"},
                "elevationAnalysis": {"$ref": "#/definitions/models.ElevationAnalysis"},
                "scores": {"$ref": "#/definitions/models.Scores"},
                "waypoints": {"type": "array", "items": {"$ref": "#/definitions/models.Waypoint"}}
            }
        },
        "models.GenerationMetadata": {
            "type": "object",
            "properties": {
                "totalCourses": {"type": "integer"},
                "radiusKm": {"type": "number"},
                "generatedAt": {"type": "string"},
                "elapsedMs": {"type": "integer"}
            }
        },
        "models.CourseGenerationResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "courses": {"type": "array", "items": {"$ref": "#/definitions/models.CourseCard"}},
                "basePosition": {"$ref": "#/definitions/models.Waypoint"},
                "metadata": {"$ref": "#/definitions/models.GenerationMetadata"}
            }
        },
        "models.FailureResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "errorKind": {"type": "string"},
                "elapsedMs": {"type": "integer"}
            }
        },
        "models.ElevationRequest": {
            "type": "object",
            "required": ["locations"],
            "properties": {"locations": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/models.Coordinate"}}}
        },
        "models.ElevationPoint": {
            "type": "object",
            "properties": {"latitude": {"type": "number"}, "longitude": {"type": "number"}, "elevation": {"type": "number"}}
        },
        "models.ElevationResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "count": {"type": "integer"},
                "elevations": {"type": "array", "items": {"$ref": "#/definitions/models.ElevationPoint"}}
            }
        },
        "models.RoadAddress": {
            "type": "object",
            "properties": {
                "address_name": {"type": "string"},
                "region_1depth_name": {"type": "string"},
                "region_2depth_name": {"type": "string"},
                "region_3depth_name": {"type": "string"},
                "road_name": {"type": "string"},
                "building_name": {"type": "string"}
            }
        },
        "models.AddressInfo": {
            "type": "object",
            "properties": {
                "address_name": {"type": "string"},
                "region_1depth_name": {"type": "string"},
                "region_2depth_name": {"type": "string"},
                "region_3depth_name": {"type": "string"},
                "road_address": {"$ref": "#/definitions/models.RoadAddress"}
            }
        },
        "models.Place": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "address_name": {"type": "string"},
                "region_1depth_name": {"type": "string"},
                "region_2depth_name": {"type": "string"},
                "region_3depth_name": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "models.WifiAccessPoint": {
            "type": "object",
            "properties": {"macAddress": {"type": "string"}, "signalStrength": {"type": "integer"}}
        },
        "models.CellTower": {
            "type": "object",
            "properties": {
                "cellId": {"type": "integer"},
                "locationAreaCode": {"type": "integer"},
                "mobileCountryCode": {"type": "integer"},
                "mobileNetworkCode": {"type": "integer"}
            }
        },
        "models.GeolocationRequest": {
            "type": "object",
            "properties": {
                "wifiAccessPoints": {"type": "array", "items": {"$ref": "#/definitions/models.WifiAccessPoint"}},
                "cellTowers": {"type": "array", "items": {"$ref": "#/definitions/models.CellTower"}}
            }
        },
        "models.Position": {
            "type": "object",
            "properties": {"latitude": {"type": "number"}, "longitude": {"type": "number"}, "accuracy": {"type": "number"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Running Course API",
	Description:      "Generates radial running courses around a position and ranks them by elevation profile.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
