// Package server exposes the tag cloud pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz                          liveness probe
//	POST /v1/layouts                       tags or text + options → stored layout
//	GET  /v1/layouts/{id}                  stored layout document
//	DELETE /v1/layouts/{id}                drop a stored layout
//	GET  /v1/layouts/{id}/render/{format}  svg, png, pdf or json
//
// Layouts are kept in a [cache.Cache] under the keyer's document key, so any
// cache backend (memory, file, Redis, MongoDB) doubles as the layout store.
// Layout computation and rendering go through a [pipeline.Runner] and share
// its content-addressed cache.
//
// Errors are JSON objects with the machine-readable code from pkg/errors:
//
//	{"error": {"code": "INVALID_MODE", "message": "unknown placement mode \"zigzag\""}}
//
// # Usage
//
//	srv := server.New(runner, server.WithLogger(logger))
//	err := srv.ListenAndServe(ctx, ":8080")
package server
