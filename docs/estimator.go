package docs

const estimatorTemplate = `{
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
        "/estimates": {
            "post": {
                "description": "Resolves both locations and simulates fare, ETA, surge, confidence and feature impacts. Responds after the configured estimate delay.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Estimates"],
                "summary": "Estimate fare and ETA",
                "parameters": [
                    {
                        "description": "Form inputs",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.EstimateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.EstimateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/estimates/{estimate_id}/booking": {
            "post": {
                "description": "Confirms a cached estimate after the configured booking delay. Each estimate can be booked once.",
                "produces": ["application/json"],
                "tags": ["Estimates"],
                "summary": "Book an estimate",
                "parameters": [
                    {"type": "string", "description": "Estimate ID", "name": "estimate_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.BookingResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/locations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Estimates"],
                "summary": "Known landmarks",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "properties": {
                                "locations": {"type": "array", "items": {"$ref": "#/definitions/models.Landmark"}}
                            }
                        }
                    }
                }
            }
        },
        "/ws/form": {
            "get": {
                "description": "WebSocket. Client frames: {\"type\":\"input\",\"data\":{...}}, {\"type\":\"estimate\"}, {\"type\":\"book\"}. Server frames: {\"type\":\"state\",\"data\":{...}} and {\"type\":\"error\",\"data\":...}.",
                "tags": ["Form"],
                "summary": "Interactive form session",
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "error": {
            "type": "object",
            "properties": {"error": {}}
        },
        "models.Landmark": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "models.Location": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "models.FeatureImpacts": {
            "type": "object",
            "properties": {
                "distance": {"type": "integer"},
                "time_of_day": {"type": "integer"},
                "demand_level": {"type": "integer"},
                "location_situation": {"type": "integer"}
            }
        },
        "dto.EstimateRequest": {
            "type": "object",
            "properties": {
                "pickup": {"type": "string", "example": "Gulshan 1"},
                "destination": {"type": "string", "example": "Dhanmondi"},
                "hour": {"type": "integer", "example": 10},
                "weekday": {"type": "integer", "example": 2},
                "rain": {"type": "boolean", "example": false},
                "category": {"type": "integer", "example": 0}
            }
        },
        "dto.EstimateResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "request": {"$ref": "#/definitions/dto.EstimateRequest"},
                "pickup": {"$ref": "#/definitions/models.Location"},
                "destination": {"$ref": "#/definitions/models.Location"},
                "distance_km": {"type": "number"},
                "fare": {"type": "number"},
                "eta_minutes": {"type": "integer"},
                "surge_multiplier": {"type": "number"},
                "surge_applied": {"type": "boolean"},
                "confidence": {"type": "string", "enum": ["Low", "Medium", "High"]},
                "recommended_destination": {"type": "string"},
                "feature_impacts": {"$ref": "#/definitions/models.FeatureImpacts"},
                "created_at": {"type": "string"},
                "category": {"type": "string", "example": "Economy"},
                "fare_text": {"type": "string", "example": "232.57 BDT"},
                "eta_text": {"type": "string", "example": "10 mins"},
                "distance_text": {"type": "string", "example": "4.33 km"}
            }
        },
        "dto.BookingResponse": {
            "type": "object",
            "properties": {
                "booking_id": {"type": "string"},
                "estimate_id": {"type": "string"},
                "status": {"type": "string", "example": "CONFIRMED"},
                "category": {"type": "string", "example": "Economy"},
                "fare": {"type": "number"},
                "fare_text": {"type": "string", "example": "232.57 BDT"},
                "pickup": {"type": "string"},
                "destination": {"type": "string"},
                "confirmed_at": {"type": "string"},
                "message": {"type": "string", "example": "Ride booked successfully!"}
            }
        }
    }
}`
