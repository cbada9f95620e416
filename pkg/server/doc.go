// Package server exposes the render pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/render   render the formula tree in the request body
//	GET  /healthz     liveness check
//	GET  /metrics     Prometheus metrics (when configured)
//
// The render body is the formula tree as JSON or YAML (see package io).
// Query parameters select the output:
//
//	format=tex|dot|svg|pdf|png   output format (default from Config.Defaults)
//	standalone=true|false        full LaTeX document or figure fragment
//	library=NAME                 extra TikZ library, repeatable
//	detailed=true|false          node-link labels show node kinds
//	scale=N                      PNG scale factor
//
// Successful responses carry the artifact with its content type and an
// X-Cache header of HIT or MISS. Errors are JSON:
//
//	{"code": "INVALID_AST", "message": "children[1]: not needs a child"}
//
// Invalid trees and options give 400, unsupported operators 422, oversized
// bodies 413 and timeouts 504.
//
// Every response carries an X-Request-ID header. A request ID sent by the
// client is echoed, otherwise a UUID is generated.
package server
