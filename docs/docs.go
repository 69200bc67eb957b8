// Package docs registers the Swagger document served at /swagger. Keep it in
// step with the handler annotations in internal/chat/delivery/http.
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
        "/api/v1/keys/validate": {
            "post": {
                "description": "Checks the format of a Groq API key without contacting the API.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Keys"],
                "summary": "Validate an API key",
                "parameters": [
                    {"type": "string", "description": "Key to check when the body is empty", "name": "X-API-Key", "in": "header"},
                    {"description": "Key to check", "name": "body", "in": "body", "schema": {"$ref": "#/definitions/http.validateKeyReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.validateKeyResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/models": {
            "get": {
                "description": "Returns the models the configured providers can serve.",
                "produces": ["application/json"],
                "tags": ["Models"],
                "summary": "List models",
                "parameters": [
                    {"type": "string", "description": "Groq API key", "name": "X-API-Key", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.listModelsResp"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/sessions": {
            "post": {
                "description": "Starts an empty conversation session.",
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Create a session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.sessionResp"}}
                }
            }
        },
        "/api/v1/sessions/{id}": {
            "get": {
                "description": "Returns the history and the active document of a session.",
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Get a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.sessionResp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Delete a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/sessions/{id}/reset": {
            "post": {
                "description": "Clears the history and the active document.",
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Reset a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.sessionResp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "409": {"description": "Conflict - interaction in progress", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/sessions/{id}/document": {
            "post": {
                "description": "Uploads a UTF-8 text file as the session's source document. The history is cleared.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Load a source document",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "UTF-8 text file", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.documentLoadResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "409": {"description": "Conflict - interaction in progress", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "413": {"description": "Document too large", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "422": {"description": "Document is not UTF-8", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/sessions/{id}/messages": {
            "get": {
                "description": "Returns the message list that the next request to the model would carry.",
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Get API messages",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.messagesResp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/sessions/{id}/chat": {
            "post": {
                "description": "Sends the question with the session history to a single model.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Conversation"],
                "summary": "Ask one model",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Groq API key", "name": "X-API-Key", "in": "header"},
                    {"description": "Question", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.chatReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.chatResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "409": {"description": "Conflict - interaction in progress", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "429": {"description": "Rate limited by the model API", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/api/v1/sessions/{id}/compare": {
            "post": {
                "description": "Streams the question to two models at once. With Accept: text/event-stream the\nanswers arrive as \"fragment\" events followed by one \"result\" event; otherwise\nthe final result is returned as JSON. A failed slot is reported in the result\nand the question is not kept in the history.",
                "consumes": ["application/json"],
                "produces": ["application/json", "text/event-stream"],
                "tags": ["Conversation"],
                "summary": "Ask two models",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "Groq API key", "name": "X-API-Key", "in": "header"},
                    {"description": "Question", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/http.compareReq"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.compareResp"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.Resp"}},
                    "409": {"description": "Conflict - interaction in progress", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check if the API is healthy",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "API is healthy", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/live": {
            "get": {
                "description": "Check if the API is alive",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness Check",
                "responses": {
                    "200": {"description": "API is alive", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Check if the API is ready to serve traffic",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {"description": "API is ready", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "No model provider configured", "schema": {"$ref": "#/definitions/response.Resp"}}
                }
            }
        }
    },
    "definitions": {
        "http.chatReq": {
            "type": "object",
            "required": ["question"],
            "properties": {
                "max_tokens": {"type": "integer", "maximum": 32768, "minimum": 1},
                "model": {"type": "string", "maxLength": 128},
                "question": {"type": "string"},
                "temperature": {"type": "number"}
            }
        },
        "http.chatResp": {
            "type": "object",
            "properties": {
                "model": {"type": "string"},
                "provider": {"type": "string"},
                "response": {"type": "string"},
                "session": {"$ref": "#/definitions/http.sessionResp"},
                "usage": {"$ref": "#/definitions/http.usageResp"}
            }
        },
        "http.compareReq": {
            "type": "object",
            "required": ["question"],
            "properties": {
                "max_tokens": {"type": "integer", "maximum": 32768, "minimum": 1},
                "model_1": {"type": "string", "maxLength": 128},
                "model_2": {"type": "string", "maxLength": 128},
                "question": {"type": "string"},
                "temperature": {"type": "number"}
            }
        },
        "http.compareResp": {
            "type": "object",
            "properties": {
                "session": {"$ref": "#/definitions/http.sessionResp"},
                "slots": {"type": "array", "items": {"$ref": "#/definitions/http.slotResp"}},
                "state": {"type": "string"}
            }
        },
        "http.documentLoadResp": {
            "type": "object",
            "properties": {
                "document": {"$ref": "#/definitions/http.documentResp"},
                "session": {"$ref": "#/definitions/http.sessionResp"}
            }
        },
        "http.documentResp": {
            "type": "object",
            "properties": {
                "bytes": {"type": "integer"},
                "loaded_at": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "http.listModelsResp": {
            "type": "object",
            "properties": {
                "models": {"type": "array", "items": {"$ref": "#/definitions/http.modelResp"}}
            }
        },
        "http.messageResp": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "http.messagesResp": {
            "type": "object",
            "properties": {
                "messages": {"type": "array", "items": {"$ref": "#/definitions/http.messageResp"}}
            }
        },
        "http.modelResp": {
            "type": "object",
            "properties": {
                "context_window": {"type": "integer"},
                "id": {"type": "string"},
                "owned_by": {"type": "string"},
                "provider": {"type": "string"}
            }
        },
        "http.sessionResp": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "document": {"$ref": "#/definitions/http.documentResp"},
                "id": {"type": "string"},
                "reset_counter": {"type": "integer"},
                "turns": {"type": "array", "items": {"$ref": "#/definitions/http.turnResp"}},
                "updated_at": {"type": "string"}
            }
        },
        "http.slotResp": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "model": {"type": "string"},
                "ok": {"type": "boolean"},
                "slot": {"type": "integer"},
                "text": {"type": "string"}
            }
        },
        "http.turnResp": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "model_1": {"type": "string"},
                "model_2": {"type": "string"},
                "response_1": {"type": "string"},
                "response_2": {"type": "string"},
                "role": {"type": "string"},
                "single": {"type": "boolean"}
            }
        },
        "http.usageResp": {
            "type": "object",
            "properties": {
                "completion_tokens": {"type": "integer"},
                "prompt_tokens": {"type": "integer"},
                "total_tokens": {"type": "integer"}
            }
        },
        "http.validateKeyReq": {
            "type": "object",
            "properties": {
                "api_key": {"type": "string"}
            }
        },
        "http.validateKeyResp": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "valid": {"type": "boolean"}
            }
        },
        "response.Resp": {
            "type": "object",
            "properties": {
                "data": {},
                "error_code": {"type": "integer"},
                "errors": {},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1",
	Host:             "localhost:8080",
	BasePath:         "",
	Schemes:          []string{"http"},
	Title:            "Groq Chatbot API",
	Description:      "Conversation sessions that ask one or two Groq-hosted models, optionally grounded on an uploaded document.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
