// Package docs publica la especificación OpenAPI en /swagger/*.
//
// docTemplate se mantiene a mano a partir de las anotaciones godoc de los
// handlers: cada ruta nueva o modificada en RegisterRoutes se refleja acá.
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
        "/animals": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Listar animales",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/animals.animalResponse"}}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "common_name y latin_name son obligatorios, únicos y distintos entre sí. sightings_attributes crea avistamientos en el mismo request y se validan en cascada.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Crear un animal",
                "parameters": [
                    {"description": "Datos del animal", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.animalRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "422": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/animals/{animalID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Ver un animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "description": "Borra el animal y todos sus avistamientos.",
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Borrar un animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "description": "Las entradas de sightings_attributes con id modifican ese avistamiento del animal; sin id crean uno nuevo.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Actualizar un animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.animalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "404": {"description": "animal not found / sighting not found", "schema": {"type": "string"}},
                    "422": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            },
            "put": {
                "description": "Las entradas de sightings_attributes con id modifican ese avistamiento del animal; sin id crean uno nuevo.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["animals"],
                "summary": "Actualizar un animal",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/animals.animalRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/animals.animalResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "404": {"description": "animal not found / sighting not found", "schema": {"type": "string"}},
                    "422": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/animals/{animalID}/sightings": {
            "get": {
                "description": "Devuelve los avistamientos cuyo ` + "`" + `date` + "`" + ` cae en el rango inclusivo [start_date, end_date]. Un límite ausente deja ese lado abierto. En la ruta anidada solo se listan los del animal.",
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Listar avistamientos por rango de fechas",
                "parameters": [
                    {"type": "string", "description": "ID del animal (solo ruta anidada)", "name": "animalID", "in": "path"},
                    {"type": "string", "description": "Inicio del rango (RFC3339 o YYYY-MM-DD[ HH:MM])", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "Fin del rango (RFC3339 o YYYY-MM-DD[ HH:MM])", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/sightings.sightingResponse"}}},
                    "400": {"description": "start_date/end_date inválido", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Crea un avistamiento bajo el animal indicado. Solo se aceptan date, latitude y longitude (planos o dentro de \"sighting\"); el resto se descarta.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Registrar un avistamiento",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"description": "Datos del avistamiento", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/sightings.sightingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sightings.sightingResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "422": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/animals/{animalID}/sightings/{sightingID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Ver un avistamiento",
                "parameters": [
                    {"type": "string", "description": "ID del animal (solo ruta anidada)", "name": "animalID", "in": "path"},
                    {"type": "string", "description": "ID del avistamiento", "name": "sightingID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sightings.sightingResponse"}},
                    "404": {"description": "animal not found / sighting not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Borrar un avistamiento",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"type": "string", "description": "ID del avistamiento", "name": "sightingID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sightings.sightingResponse"}},
                    "404": {"description": "animal not found / sighting not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "description": "Aplica solo los campos permitidos presentes en el body. Si la validación falla responde 422 (200 en modo legacy).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Actualizar un avistamiento",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"type": "string", "description": "ID del avistamiento", "name": "sightingID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/sightings.sightingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sightings.sightingResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "404": {"description": "animal not found / sighting not found", "schema": {"type": "string"}},
                    "422": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            },
            "put": {
                "description": "Aplica solo los campos permitidos presentes en el body. Si la validación falla responde 422 (200 en modo legacy).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Actualizar un avistamiento",
                "parameters": [
                    {"type": "string", "description": "ID del animal", "name": "animalID", "in": "path", "required": true},
                    {"type": "string", "description": "ID del avistamiento", "name": "sightingID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/sightings.sightingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sightings.sightingResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "404": {"description": "animal not found / sighting not found", "schema": {"type": "string"}},
                    "422": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/sightings": {
            "get": {
                "description": "Devuelve los avistamientos cuyo ` + "`" + `date` + "`" + ` cae en el rango inclusivo [start_date, end_date]. Un límite ausente deja ese lado abierto. En la ruta anidada solo se listan los del animal.",
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Listar avistamientos por rango de fechas",
                "parameters": [
                    {"type": "string", "description": "Inicio del rango (RFC3339 o YYYY-MM-DD[ HH:MM])", "name": "start_date", "in": "query"},
                    {"type": "string", "description": "Fin del rango (RFC3339 o YYYY-MM-DD[ HH:MM])", "name": "end_date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/sightings.sightingResponse"}}},
                    "400": {"description": "start_date/end_date inválido", "schema": {"type": "string"}}
                }
            },
            "post": {
                "description": "Crea un avistamiento para el animal de animal_id (query o body). Solo se aceptan date, latitude y longitude (planos o dentro de \"sighting\"); el resto se descarta.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Registrar un avistamiento",
                "parameters": [
                    {"type": "string", "description": "ID del animal (también puede venir en el body)", "name": "animal_id", "in": "query"},
                    {"description": "Datos del avistamiento", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/sightings.sightingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sightings.sightingResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "404": {"description": "animal not found", "schema": {"type": "string"}},
                    "422": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        },
        "/sightings/{sightingID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Ver un avistamiento",
                "parameters": [
                    {"type": "string", "description": "ID del avistamiento", "name": "sightingID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sightings.sightingResponse"}},
                    "404": {"description": "animal not found / sighting not found", "schema": {"type": "string"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Borrar un avistamiento",
                "parameters": [
                    {"type": "string", "description": "ID del avistamiento", "name": "sightingID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sightings.sightingResponse"}},
                    "404": {"description": "animal not found / sighting not found", "schema": {"type": "string"}}
                }
            },
            "patch": {
                "description": "Aplica solo los campos permitidos presentes en el body. Si la validación falla responde 422 (200 en modo legacy).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Actualizar un avistamiento",
                "parameters": [
                    {"type": "string", "description": "ID del avistamiento", "name": "sightingID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/sightings.sightingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sightings.sightingResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "404": {"description": "animal not found / sighting not found", "schema": {"type": "string"}},
                    "422": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            },
            "put": {
                "description": "Aplica solo los campos permitidos presentes en el body. Si la validación falla responde 422 (200 en modo legacy).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sightings"],
                "summary": "Actualizar un avistamiento",
                "parameters": [
                    {"type": "string", "description": "ID del avistamiento", "name": "sightingID", "in": "path", "required": true},
                    {"description": "Campos a modificar", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/sightings.sightingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/sightings.sightingResponse"}},
                    "400": {"description": "invalid json", "schema": {"type": "string"}},
                    "404": {"description": "animal not found / sighting not found", "schema": {"type": "string"}},
                    "422": {"description": "errores por campo", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"type": "string"}}}}
                }
            }
        }
    },
    "definitions": {
        "animals.animalRequest": {
            "type": "object",
            "properties": {
                "common_name": {"type": "string", "example": "Weasel"},
                "kingdom": {"type": "string", "example": "mammal"},
                "latin_name": {"type": "string", "example": "Mustela nivalis"},
                "sightings_attributes": {"type": "array", "items": {"$ref": "#/definitions/animals.nestedSightingIn"}}
            }
        },
        "animals.animalResponse": {
            "type": "object",
            "properties": {
                "common_name": {"type": "string"},
                "created_at": {"type": "string"},
                "id": {"type": "string"},
                "kingdom": {"type": "string"},
                "latin_name": {"type": "string"},
                "sightings": {"type": "array", "items": {"$ref": "#/definitions/animals.nestedSightingResponse"}},
                "updated_at": {"type": "string"}
            }
        },
        "animals.nestedSightingIn": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string", "example": "2022-01-12 16:57"},
                "latitude": {"type": "string", "example": "45.5152"},
                "longitude": {"type": "string", "example": "122.6784"}
            }
        },
        "animals.nestedSightingResponse": {
            "type": "object",
            "properties": {
                "animal_id": {"type": "string"},
                "date": {"type": "string"},
                "id": {"type": "string"},
                "latitude": {"type": "string", "example": "45.5152"},
                "longitude": {"type": "string", "example": "122.6784"}
            }
        },
        "sightings.sightingRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2022-01-12 16:57"},
                "latitude": {"type": "string", "example": "45.5152"},
                "longitude": {"type": "string", "example": "122.6784"}
            }
        },
        "sightings.sightingResponse": {
            "type": "object",
            "properties": {
                "animal_id": {"type": "string"},
                "created_at": {"type": "string"},
                "date": {"type": "string"},
                "id": {"type": "string"},
                "latitude": {"type": "string", "example": "45.5152"},
                "longitude": {"type": "string", "example": "122.6784"},
                "updated_at": {"type": "string"}
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
	Title:            "Wildlife Sightings API",
	Description:      "Registro de animales y sus avistamientos.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
