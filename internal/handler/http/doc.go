// Package http implements the REST API of the account service.
//
// It wires chi routes for registration, login, e-mail verification, the
// caller's own profile and the administrative /users collection. Middleware
// in this package resolves the bearer token into a principal, enforces role
// requirements, tags each request with a trace id and writes access logs
// before requests are delegated to the service layer.
package http
