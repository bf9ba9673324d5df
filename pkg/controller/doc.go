// Package controller contains HTTP middlewares and helper handlers shared by
// the checker API server.
//
// Middlewares:
//   - WithCORS: Adds permissive CORS headers and answers OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the
//     context and writes a structured access log per request.
//
// Helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers for
//     mounting under a debug path.
package controller
