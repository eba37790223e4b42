// Package openapi embeds the OpenAPI document served by the gateway.
package openapi

// YAML is the OpenAPI 3.0 spec for the public gateway API.
var YAML = []byte(`openapi: 3.0.3
info:
  title: Storefront API Gateway
  version: "1.0"
  description: >
    Public entry point for the storefront microservices. All authenticated
    routes expect a bearer token obtained from /auth/login.
servers:
  - url: http://localhost:3000
paths:
  /auth/register:
    post:
      summary: Register a new account
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [email, password, fullName]
              properties:
                email: { type: string, format: email }
                password: { type: string, minLength: 6 }
                fullName: { type: string, minLength: 3 }
                role: { type: string, enum: [user, admin] }
      responses:
        "201": { description: Registered, returns token and user }
        "400": { description: Validation failure or email already registered }
  /auth/login:
    post:
      summary: Log in
      responses:
        "200": { description: Returns token and user }
        "401": { description: Invalid credentials }
  /auth/verify:
    post:
      summary: Verify a bearer token
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Token valid, returns identity }
        "401": { description: Missing or invalid token }
  /products:
    get:
      summary: List products
      parameters:
        - { name: page, in: query, schema: { type: integer, minimum: 1 } }
        - { name: limit, in: query, schema: { type: integer, minimum: 1 } }
        - { name: category, in: query, schema: { type: string } }
        - { name: search, in: query, schema: { type: string } }
      responses:
        "200": { description: Page of products with pagination envelope }
    post:
      summary: Create a product (admin)
      security: [{ bearerAuth: [] }]
      responses:
        "201": { description: Created }
        "403": { description: Admin only }
  /products/{id}:
    get:
      summary: Get a product
      responses:
        "200": { description: Product }
        "404": { description: Product not found }
    put:
      summary: Update a product (admin)
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Updated }
    delete:
      summary: Delete a product (admin)
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Deleted }
  /orders:
    post:
      summary: Create a pending order
      security: [{ bearerAuth: [] }]
      parameters:
        - name: Idempotency-Key
          in: header
          required: false
          schema: { type: string }
      responses:
        "201": { description: Order created as pending }
        "404": { description: Product not found }
        "502": { description: Product service unavailable }
    get:
      summary: List all orders (admin)
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Page of orders }
  /orders/checkout:
    post:
      summary: Create an order with instant payment
      security: [{ bearerAuth: [] }]
      parameters:
        - name: Idempotency-Key
          in: header
          required: false
          schema: { type: string }
      responses:
        "201": { description: Order created as completed/paid }
        "200": { description: Idempotent replay, previously created order }
  /orders/my-orders:
    get:
      summary: List the caller's orders
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Orders enriched with product data }
  /orders/{id}:
    get:
      summary: Get an order (owner or admin)
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Order }
        "403": { description: Not the owner }
        "404": { description: Order not found }
    delete:
      summary: Cancel a pending order (owner or admin)
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Cancelled }
        "404": { description: Order not found or cannot be cancelled }
  /orders/{id}/status:
    patch:
      summary: Update order status (admin)
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Status updated }
        "409": { description: Disallowed status transition }
  /payments:
    post:
      summary: Initiate a payment
      security: [{ bearerAuth: [] }]
      responses:
        "201": { description: Payment created with reference }
    get:
      summary: List all payments (admin)
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Page of payments }
  /payments/{id}:
    get:
      summary: Get a payment (owner or admin)
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Payment }
  /payments/{id}/verify:
    post:
      summary: Verify a payment by reference
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Payment verified }
        "400": { description: Already verified or invalid reference }
  /users/me:
    get:
      summary: Get the caller's profile
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: User }
    put:
      summary: Update the caller's profile
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Updated }
  /users:
    get:
      summary: List users (admin)
      security: [{ bearerAuth: [] }]
      responses:
        "200": { description: Page of users }
    post:
      summary: Create a user (admin)
      security: [{ bearerAuth: [] }]
      responses:
        "201": { description: Created }
components:
  securitySchemes:
    bearerAuth:
      type: http
      scheme: bearer
      bearerFormat: JWT
`)
