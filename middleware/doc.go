// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /election", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(duration_ms). The request id comes from X-Request-ID or is generated, and
is echoed back in the response.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers
Content-Type, X-Identity, X-Identity-Key, X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Caller Identity

	caller, err := middleware.CallerIdentity(r, cfg.IdentitySalt)

Returns the empty identity for anonymous requests and an error when
X-Identity-Key does not match X-Identity.
*/
package middleware
