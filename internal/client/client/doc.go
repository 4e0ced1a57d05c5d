// Package client contains the client-side building blocks that talk to the
// authentication backend and bootstrap local persistence.
//
// # Overview
//
//  1. A transport-agnostic API contract (see the Client interface):
//     Register, Login, Logout and Ping.
//  2. A concrete HTTP/JSON implementation (see HTTPClient). Login requests
//     go through a cookie jar so the backend can keep a cookie session;
//     registration requests never send or store cookies.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Failures are classified so callers can render a useful message:
//
//   - ErrUnavailable: the request never got an HTTP answer.
//   - *ValidationError: the server rejected the input (4xx with field errors).
//   - ErrUnexpectedResponse: 2xx answer whose body does not have the
//     expected shape.
//   - ErrInvalidCredentials / ErrUnauthorized: authentication refused.
//   - *ServerError: any other non-2xx answer.
//
// Match them with errors.Is and errors.As. Context cancellation is returned
// as the context error, not as ErrUnavailable.
package client
