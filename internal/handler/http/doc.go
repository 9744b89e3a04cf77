// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, request tracing, access
// logging, timeouts and response compression are handled in this package
// before requests are delegated to the service layer.
//
// Every response, including errors produced by middleware, is written as the
// envelope {"status", "message", "data"} described by [models.Response].
package http
