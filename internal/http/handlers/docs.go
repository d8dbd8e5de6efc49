package handlers

import "github.com/gin-gonic/gin"

const docsUIHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>Fintrack API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
    <style>
      body { margin: 0; background: #f8fafc; }
      #swagger-ui { max-width: 1200px; margin: 0 auto; }
    </style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: "/docs/openapi.yaml",
        dom_id: "#swagger-ui",
        deepLinking: true,
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>`

const openAPIYAML = `openapi: 3.0.3
info:
  title: Fintrack API
  description: Personal finance tracker. Register, log in, record income and expense transactions, read income/expense totals.
  version: "1.0"
paths:
  /api/auth/register:
    post:
      summary: Register with email and password
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Credentials'
      responses:
        "200":
          description: Bearer token
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Token'
        "400":
          description: Email already registered or invalid input
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Message'
  /api/auth/login:
    post:
      summary: Exchange credentials for a bearer token
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Credentials'
      responses:
        "200":
          description: Bearer token
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Token'
        "400":
          description: Invalid credentials
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Message'
  /api/transactions:
    get:
      summary: List the caller's transactions
      security: [{ bearerAuth: [] }]
      responses:
        "200":
          description: Transactions owned by the caller
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Transaction'
    post:
      summary: Record a transaction
      security: [{ bearerAuth: [] }]
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/CreateTransaction'
      responses:
        "200":
          description: The created transaction
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Transaction'
  /api/transactions/summary:
    get:
      summary: Income and expense totals for the caller
      security: [{ bearerAuth: [] }]
      responses:
        "200":
          description: Totals
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Summary'
  /api/transactions/{id}:
    put:
      summary: Patch a transaction the caller owns
      security: [{ bearerAuth: [] }]
      parameters:
        - name: id
          in: path
          required: true
          schema: { type: string }
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/UpdateTransaction'
      responses:
        "200":
          description: The updated transaction
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Transaction'
        "404":
          description: Missing or owned by someone else
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Message'
    delete:
      summary: Delete a transaction the caller owns
      security: [{ bearerAuth: [] }]
      parameters:
        - name: id
          in: path
          required: true
          schema: { type: string }
      responses:
        "200":
          description: Confirmation
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Message'
        "404":
          description: Missing or owned by someone else
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Message'
components:
  securitySchemes:
    bearerAuth:
      type: http
      scheme: bearer
      bearerFormat: JWT
  schemas:
    Credentials:
      type: object
      required: [email, password]
      properties:
        email: { type: string, format: email }
        password: { type: string }
    Token:
      type: object
      properties:
        token: { type: string }
    Message:
      type: object
      properties:
        message: { type: string }
    Transaction:
      type: object
      properties:
        id: { type: string }
        userId: { type: string }
        amount: { type: number }
        category: { type: string }
        type: { type: string, enum: [income, expense] }
        date: { type: string, format: date-time }
    CreateTransaction:
      type: object
      required: [amount, category, type]
      properties:
        amount: { type: number }
        category: { type: string }
        type: { type: string, enum: [income, expense] }
    UpdateTransaction:
      type: object
      description: Zero or empty fields are treated as not provided.
      properties:
        amount: { type: number }
        category: { type: string }
        type: { type: string, enum: [income, expense] }
    Summary:
      type: object
      properties:
        income: { type: number }
        expense: { type: number }
`

func DocsUI(ctx *gin.Context) {
	ctx.Data(200, "text/html; charset=utf-8", []byte(docsUIHTML))
}

func OpenAPISpec(ctx *gin.Context) {
	ctx.Data(200, "application/yaml; charset=utf-8", []byte(openAPIYAML))
}
