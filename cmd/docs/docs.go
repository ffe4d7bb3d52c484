// Package docs holds the Swagger document served under /swagger. Keep it in step with the handler annotations.
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
        "/accounts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "List accessible accounts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListAccountsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Open a new account",
                "parameters": [
                    {"description": "Account details", "name": "account", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAccountRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "400": {"description": "Invalid input or IBAN", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "409": {"description": "IBAN already registered", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/accounts/balance": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get total balance",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AggregateBalanceResponse"}}
                }
            }
        },
        "/accounts/{accountID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get an account by ID",
                "parameters": [{"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountResponse"}},
                    "403": {"description": "Insufficient access level", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}},
                    "404": {"description": "Account not found", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/accounts/{accountID}/balance": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["accounts"],
                "summary": "Get account balance",
                "parameters": [{"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccountBalanceResponse"}}
                }
            }
        },
        "/accounts/{accountID}/access": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "List access grants",
                "parameters": [{"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListAccessGrantsResponse"}}
                }
            }
        },
        "/accounts/{accountID}/access/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "Get own access level",
                "parameters": [{"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccessLevelResponse"}}
                }
            }
        },
        "/accounts/{accountID}/access/{userID}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["access"],
                "summary": "Grant or change access",
                "parameters": [
                    {"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true},
                    {"type": "string", "description": "Target user ID", "name": "userID", "in": "path", "required": true},
                    {"description": "Tier to grant", "name": "grant", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GrantAccessRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AccessGrantResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["access"],
                "summary": "Revoke access",
                "parameters": [
                    {"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true},
                    {"type": "string", "description": "Target user ID", "name": "userID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/accounts/{accountID}/transactions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "List account transactions",
                "parameters": [
                    {"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Number of transactions to skip", "name": "offset", "in": "query"},
                    {"type": "string", "description": "First booking date, YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "Last booking date, YYYY-MM-DD", "name": "to", "in": "query"},
                    {"type": "string", "description": "Substring of purpose, payee or payer", "name": "q", "in": "query"},
                    {"type": "string", "description": "Exact category", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListTransactionsResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Record a transaction",
                "parameters": [
                    {"type": "string", "description": "Account ID", "name": "accountID", "in": "path", "required": true},
                    {"description": "Transaction details", "name": "transaction", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RecordTransactionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}}
                }
            }
        },
        "/transactions/recent": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Recent transactions",
                "parameters": [{"type": "integer", "description": "Number of transactions (default 5)", "name": "count", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListTransactionsResponse"}}
                }
            }
        },
        "/transactions/payees": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Payee suggestions",
                "parameters": [{"type": "string", "description": "Search term", "name": "q", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PayeesResponse"}}
                }
            }
        },
        "/transactions/{transactionID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Get a transaction",
                "parameters": [{"type": "string", "description": "Transaction ID", "name": "transactionID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TransactionResponse"}}
                }
            }
        },
        "/transactions/{transactionID}/money-events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["money-events"],
                "summary": "Money events of a transaction",
                "parameters": [{"type": "string", "description": "Transaction ID", "name": "transactionID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListMoneyEventsResponse"}}
                }
            }
        },
        "/stats/monthly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["transactions"],
                "summary": "Monthly income and expenses",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MonthlyStatsResponse"}}
                }
            }
        },
        "/money-events": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["money-events"],
                "summary": "Create a money event",
                "parameters": [{"description": "Event details", "name": "event", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateMoneyEventRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.MoneyEventResponse"}}
                }
            }
        },
        "/money-events/{eventID}/receipt": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["money-events"],
                "summary": "Attach a receipt to a money event",
                "parameters": [
                    {"type": "string", "description": "Money event ID", "name": "eventID", "in": "path", "required": true},
                    {"description": "Receipt to attach", "name": "receipt", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AttachReceiptRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/money-events/{eventID}/transactions/{transactionID}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["money-events"],
                "summary": "Link a transaction to a money event",
                "parameters": [
                    {"type": "string", "description": "Money event ID", "name": "eventID", "in": "path", "required": true},
                    {"type": "string", "description": "Transaction ID", "name": "transactionID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["money-events"],
                "summary": "Unlink a transaction from a money event",
                "parameters": [
                    {"type": "string", "description": "Money event ID", "name": "eventID", "in": "path", "required": true},
                    {"type": "string", "description": "Transaction ID", "name": "transactionID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/receipts": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["money-events"],
                "summary": "Create a receipt",
                "parameters": [{"description": "Receipt details", "name": "receipt", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateReceiptRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.ReceiptResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register a user",
                "parameters": [{"description": "User details", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateUserRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserResponse"}},
                    "409": {"description": "Username taken", "schema": {"$ref": "#/definitions/handlers.ErrorResponse"}}
                }
            }
        },
        "/users/{userID}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get a user by ID",
                "parameters": [{"type": "string", "description": "User ID", "name": "userID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "dto.CreateAccountRequest": {
            "type": "object",
            "required": ["holderName", "iban"],
            "properties": {
                "iban": {"type": "string"}, "bic": {"type": "string"}, "bankName": {"type": "string"},
                "routingCode": {"type": "string"}, "accountNumber": {"type": "string"},
                "accountType": {"type": "string"}, "currency": {"type": "string"},
                "holderName": {"type": "string"}, "description": {"type": "string"}
            }
        },
        "dto.AccountResponse": {
            "type": "object",
            "properties": {
                "accountID": {"type": "string"}, "iban": {"type": "string"}, "bic": {"type": "string"},
                "bankName": {"type": "string"}, "routingCode": {"type": "string"}, "accountNumber": {"type": "string"},
                "accountType": {"type": "string"}, "currency": {"type": "string"}, "holderName": {"type": "string"},
                "description": {"type": "string"}, "balance": {"type": "string"},
                "createdAt": {"type": "string"}, "createdBy": {"type": "string"}
            }
        },
        "dto.ListAccountsResponse": {"type": "object", "properties": {"accounts": {"type": "array", "items": {"$ref": "#/definitions/dto.AccountResponse"}}}},
        "dto.AccountBalanceResponse": {"type": "object", "properties": {"accountID": {"type": "string"}, "balance": {"type": "string"}}},
        "dto.AggregateBalanceResponse": {"type": "object", "properties": {"userID": {"type": "string"}, "balance": {"type": "string"}}},
        "dto.GrantAccessRequest": {"type": "object", "required": ["tier"], "properties": {"tier": {"type": "string", "enum": ["NONE", "VIEW", "READONLY", "READWRITE", "PAYMENTS", "ADMIN"]}}},
        "dto.AccessGrantResponse": {
            "type": "object",
            "properties": {
                "accountID": {"type": "string"}, "userID": {"type": "string"}, "tier": {"type": "string"},
                "grantedBy": {"type": "string"}, "grantedAt": {"type": "string"}
            }
        },
        "dto.ListAccessGrantsResponse": {"type": "object", "properties": {"grants": {"type": "array", "items": {"$ref": "#/definitions/dto.AccessGrantResponse"}}}},
        "dto.AccessLevelResponse": {"type": "object", "properties": {"accountID": {"type": "string"}, "tier": {"type": "string"}}},
        "dto.RecordTransactionRequest": {
            "type": "object",
            "required": ["counterpartyIBAN", "counterpartyName", "direction"],
            "properties": {
                "amount": {"type": "string"}, "direction": {"type": "string", "enum": ["CREDIT", "DEBIT"]},
                "counterpartyName": {"type": "string"}, "counterpartyIBAN": {"type": "string"},
                "purpose": {"type": "string"}, "category": {"type": "string"},
                "bookingDate": {"type": "string"}, "valueDate": {"type": "string"}
            }
        },
        "dto.TransactionResponse": {
            "type": "object",
            "properties": {
                "transactionID": {"type": "string"}, "accountID": {"type": "string"}, "direction": {"type": "string"},
                "bookingDate": {"type": "string"}, "valueDate": {"type": "string"}, "amount": {"type": "string"},
                "currency": {"type": "string"}, "payeeName": {"type": "string"}, "payeeIBAN": {"type": "string"},
                "payerName": {"type": "string"}, "payerIBAN": {"type": "string"}, "purpose": {"type": "string"},
                "category": {"type": "string"}, "createdAt": {"type": "string"}, "createdBy": {"type": "string"}
            }
        },
        "dto.ListTransactionsResponse": {
            "type": "object",
            "properties": {
                "transactions": {"type": "array", "items": {"$ref": "#/definitions/dto.TransactionResponse"}},
                "limit": {"type": "integer"}, "offset": {"type": "integer"}
            }
        },
        "dto.MonthlyStatsResponse": {
            "type": "object",
            "properties": {"from": {"type": "string"}, "to": {"type": "string"}, "income": {"type": "string"}, "expenses": {"type": "string"}}
        },
        "dto.PayeesResponse": {"type": "object", "properties": {"names": {"type": "array", "items": {"type": "string"}}}},
        "dto.CreateMoneyEventRequest": {"type": "object", "required": ["description"], "properties": {"date": {"type": "string"}, "description": {"type": "string"}}},
        "dto.MoneyEventResponse": {
            "type": "object",
            "properties": {
                "moneyEventID": {"type": "string"}, "date": {"type": "string"}, "description": {"type": "string"},
                "receiptID": {"type": "string"}, "createdAt": {"type": "string"}, "createdBy": {"type": "string"}
            }
        },
        "dto.ListMoneyEventsResponse": {"type": "object", "properties": {"moneyEvents": {"type": "array", "items": {"$ref": "#/definitions/dto.MoneyEventResponse"}}}},
        "dto.CreateReceiptRequest": {"type": "object", "required": ["description"], "properties": {"description": {"type": "string"}}},
        "dto.AttachReceiptRequest": {"type": "object", "required": ["receiptID"], "properties": {"receiptID": {"type": "string"}}},
        "dto.ReceiptResponse": {
            "type": "object",
            "properties": {"receiptID": {"type": "string"}, "description": {"type": "string"}, "createdAt": {"type": "string"}, "createdBy": {"type": "string"}}
        },
        "dto.CreateUserRequest": {"type": "object", "required": ["password", "username"], "properties": {"username": {"type": "string"}, "password": {"type": "string"}}},
        "dto.UserResponse": {"type": "object", "properties": {"userID": {"type": "string"}, "username": {"type": "string"}, "createdAt": {"type": "string"}}}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "MyBanking Backend API",
	Description:      "Demo banking core: accounts, tiered access control and an IBAN-keyed ledger.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
