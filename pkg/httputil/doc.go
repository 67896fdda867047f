// Package httputil provides HTTP helpers shared by the API handlers.
//
// # Overview
//
//   - [Decode]: Bounded JSON request decoding with struct-tag validation
//   - [WriteJSON]: JSON responses
//   - [WriteError]: Error responses with the status derived from the error code
//
// # Validation
//
// Request structs declare their constraints with validator tags:
//
//	type RunRequest struct {
//	    Notation string   `json:"notation" validate:"required,max=65536"`
//	    Formats  []string `json:"formats" validate:"omitempty,max=6,dive,oneof=json text dot svg"`
//	}
//
//	var req RunRequest
//	if err := httputil.Decode(r, &req); err != nil {
//	    httputil.WriteError(w, logger, err)
//	    return
//	}
//
// Validation failures are reported as the first failing field, with code
// INVALID_INPUT.
//
// # Errors
//
// [WriteError] maps error codes to statuses: INVALID_* to 400, NOT_FOUND to
// 404, UNSUPPORTED to 422, BACKEND_ERROR to 503 and everything else to 500.
// Messages of 5xx errors are logged and replaced by a generic message.
package httputil
