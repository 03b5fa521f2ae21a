package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Abitur Registration API",
        "description": "Cohort registration with an admin console for cohorts, accounts and exports.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {
            "name": "Registration",
            "description": "Public sign-up form"
        },
        {
            "name": "Authentication",
            "description": "Admin sessions"
        },
        {
            "name": "Admin",
            "description": "Registration overview"
        },
        {
            "name": "Cohorts",
            "description": "Cohort management"
        },
        {
            "name": "Admins",
            "description": "Console accounts"
        },
        {
            "name": "Export",
            "description": "CSV and PDF exports"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {
                        "description": "Ready"
                    },
                    "503": {
                        "description": "Dependency unavailable"
                    }
                }
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": [
                    "text/plain"
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            }
        },
        "/": {
            "get": {
                "tags": [
                    "Registration"
                ],
                "summary": "Cohorts open for registration",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/datenschutz": {
            "get": {
                "tags": [
                    "Registration"
                ],
                "summary": "Data protection notice",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/submit": {
            "post": {
                "tags": [
                    "Registration"
                ],
                "summary": "Register a student",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "jahrgang_id",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Cohort ID"
                    },
                    {
                        "name": "vorname",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "First name"
                    },
                    {
                        "name": "nachname",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Last name"
                    },
                    {
                        "name": "email",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "E-mail"
                    },
                    {
                        "name": "datenschutz_einwilligung",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Consent"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Login state",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "302": {
                        "description": "Redirect"
                    }
                }
            },
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Authenticate admin",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "benutzername",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Username"
                    },
                    {
                        "name": "passwort",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Password"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Authenticate admin",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "benutzername",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Username"
                    },
                    {
                        "name": "passwort",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Password"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/logout": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "End the admin session",
                "responses": {
                    "302": {
                        "description": "Redirect"
                    }
                }
            }
        },
        "/admin/dashboard": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "Registrations and stats",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/delete/{id}": {
            "get": {
                "tags": [
                    "Admin"
                ],
                "summary": "Delete one registration",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true,
                        "description": "Student ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/jahrgaenge": {
            "get": {
                "tags": [
                    "Cohorts"
                ],
                "summary": "Cohorts with student counts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/jahrgang/add": {
            "post": {
                "tags": [
                    "Cohorts"
                ],
                "summary": "Add a cohort",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "jahrgang",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Year"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/jahrgang/toggle/{id}": {
            "get": {
                "tags": [
                    "Cohorts"
                ],
                "summary": "Activate or deactivate a cohort",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true,
                        "description": "Cohort ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/jahrgang/delete/{id}": {
            "get": {
                "tags": [
                    "Cohorts"
                ],
                "summary": "Delete a cohort and its students",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true,
                        "description": "Cohort ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/export/csv": {
            "get": {
                "tags": [
                    "Export"
                ],
                "summary": "Export all registrations as CSV",
                "produces": [
                    "text/csv"
                ],
                "responses": {
                    "200": {
                        "description": "Semicolon separated file"
                    }
                }
            }
        },
        "/admin/export/csv/{jahrgang_id}": {
            "get": {
                "tags": [
                    "Export"
                ],
                "summary": "Export one cohort as CSV",
                "produces": [
                    "text/csv"
                ],
                "parameters": [
                    {
                        "name": "jahrgang_id",
                        "in": "path",
                        "type": "integer",
                        "required": true,
                        "description": "Cohort ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Semicolon separated file"
                    },
                    "404": {
                        "description": "Cohort missing or empty",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/export/pdf": {
            "get": {
                "tags": [
                    "Export"
                ],
                "summary": "Export all registrations as PDF roster",
                "produces": [
                    "application/pdf"
                ],
                "responses": {
                    "200": {
                        "description": "PDF file"
                    }
                }
            }
        },
        "/admin/export/pdf/{jahrgang_id}": {
            "get": {
                "tags": [
                    "Export"
                ],
                "summary": "Export one cohort as PDF roster",
                "produces": [
                    "application/pdf"
                ],
                "parameters": [
                    {
                        "name": "jahrgang_id",
                        "in": "path",
                        "type": "integer",
                        "required": true,
                        "description": "Cohort ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "PDF file"
                    },
                    "404": {
                        "description": "Cohort missing or empty",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/benutzer": {
            "get": {
                "tags": [
                    "Admins"
                ],
                "summary": "Admin accounts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/benutzer/add": {
            "post": {
                "tags": [
                    "Admins"
                ],
                "summary": "Create an admin account",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "benutzername",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Username"
                    },
                    {
                        "name": "passwort",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Password"
                    },
                    {
                        "name": "passwort_wiederholen",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Password confirmation"
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/benutzer/change-password": {
            "post": {
                "tags": [
                    "Admins"
                ],
                "summary": "Rotate an admin password",
                "consumes": [
                    "application/x-www-form-urlencoded"
                ],
                "parameters": [
                    {
                        "name": "benutzer_id",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Admin ID"
                    },
                    {
                        "name": "altes_passwort",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "Current password"
                    },
                    {
                        "name": "neues_passwort",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "New password"
                    },
                    {
                        "name": "neues_passwort_wiederholen",
                        "in": "formData",
                        "type": "string",
                        "required": true,
                        "description": "New password confirmation"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation failed",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        },
        "/admin/benutzer/delete/{id}": {
            "get": {
                "tags": [
                    "Admins"
                ],
                "summary": "Delete an admin account",
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "integer",
                        "required": true,
                        "description": "Admin ID"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
