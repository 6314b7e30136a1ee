// Package server runs the account service's listeners.
//
// The REST API is served by net/http with the chi router built in
// internal/handler/http; the optional gRPC listener answers
// grpc.health.v1 probes. Both stop gracefully on SIGINT or SIGTERM.
package server
