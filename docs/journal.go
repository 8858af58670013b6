package docs

const journalTemplate = `{
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
        "/admin/estimates": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Journaled estimates",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Page size", "name": "page_size", "in": "query"},
                    {"type": "string", "default": "-created_at", "description": "Sort key, prefix with - for descending", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.JournalListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/error"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/error"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/error"}}
                }
            }
        },
        "/admin/estimates/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "tags": ["Admin"],
                "summary": "Export journal as CSV",
                "parameters": [
                    {"type": "string", "default": "-created_at", "description": "Sort key", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/error"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/error"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/error"}}
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
        "models.JournalEntry": {
            "type": "object",
            "properties": {
                "estimate_id": {"type": "string"},
                "pickup": {"type": "string"},
                "destination": {"type": "string"},
                "hour": {"type": "integer"},
                "weekday": {"type": "integer"},
                "rain": {"type": "boolean"},
                "category": {"type": "string"},
                "distance_km": {"type": "number"},
                "fare": {"type": "number"},
                "eta_minutes": {"type": "integer"},
                "surge_multiplier": {"type": "number"},
                "confidence": {"type": "string"},
                "booked": {"type": "boolean"},
                "booking_id": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "models.Metadata": {
            "type": "object",
            "properties": {
                "current_page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "first_page": {"type": "integer"},
                "last_page": {"type": "integer"},
                "total_records": {"type": "integer"}
            }
        },
        "dto.JournalListResponse": {
            "type": "object",
            "properties": {
                "estimates": {"type": "array", "items": {"$ref": "#/definitions/models.JournalEntry"}},
                "metadata": {"$ref": "#/definitions/models.Metadata"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`
