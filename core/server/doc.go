// Package server holds the HTTP server configuration.
//
// The start command reads Config to bind the Fiber application and to
// configure the API key middleware.
package server
