// Package catalog error taxonomy.
//
// Three error kinds cross the package boundary:
//
//   - ValidationError: user-correctable input problem, detected before
//     any I/O. The mutation coordinator returns these without touching
//     the network or the store.
//   - NetworkError: a remote API round trip failed, either at the
//     transport level or with a non-2xx response.
//   - NotFoundError: a referenced product id is absent from the
//     catalog store (e.g. opening an edit view for a stale id).
//
// MapError converts any error into a user-facing message with a
// support code, following the pattern table approach: typed errors are
// matched first, then case-insensitive substring patterns, then the
// ERR000 fallback.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports an invalid field in a create or update
// request. No network call is made and no state is mutated when one is
// returned.
type ValidationError struct {
	Field   string // Field name ("title", "price", "image")
	Value   string // The offending value, if printable
	Message string // Human-readable reason
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NetworkError reports a failed remote API call. StatusCode is zero
// for transport-level failures.
type NetworkError struct {
	Op         string // Operation, e.g. "create product"
	StatusCode int    // HTTP status, 0 if the request never completed
	Err        error  // Underlying cause, may be nil for bare HTTP errors
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: remote API returned status %d", e.Op, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: request failed", e.Op)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NotFoundError reports a product id absent from the catalog store.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ID)
}

// ErrNotLoaded is returned by view derivation before the initial
// catalog load has succeeded, so callers can distinguish "not yet
// loaded" from an empty catalog.
var ErrNotLoaded = errors.New("catalog not loaded")

// ErrNothingToExport is returned when the current page has no rows.
// Callers must check before writing a file; a header-only document is
// never produced.
var ErrNothingToExport = errors.New("nothing to export")

// UserMessage provides user-friendly error information with actionable
// guidance. The Code is quoted to support staff for faster diagnosis.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference code
}

// errorPattern maps a technical error substring to a user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are matched case-insensitively with strings.Contains.
// First match wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "The request was cancelled",
			Action:  "Please try again",
			Code:    "NET003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The request timed out",
			Action:  "Check your connection and try again",
			Code:    "NET004",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the catalog API",
			Action:  "Please try again in a few moments",
			Code:    "NET005",
		},
	},
	{
		pattern: "not loaded",
		msg: UserMessage{
			Message: "Product data has not been loaded yet",
			Action:  "Reload the catalog and try again",
			Code:    "CAT002",
		},
	},
	{
		pattern: "nothing to export",
		msg: UserMessage{
			Message: "There is no data to export",
			Action:  "Adjust the search so the page has at least one row",
			Code:    "EXP001",
		},
	},
}

// MapError converts an error into a user-facing message. Typed errors
// are matched before the pattern table.
func MapError(err error) UserMessage {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return UserMessage{
			Message: verr.Message,
			Action:  "Correct the highlighted field and resubmit",
			Code:    "VAL001",
		}
	}

	var nerr *NetworkError
	if errors.As(err, &nerr) {
		if nerr.StatusCode >= 400 {
			return UserMessage{
				Message: fmt.Sprintf("The catalog API rejected the request (status %d)", nerr.StatusCode),
				Action:  "Please try again",
				Code:    "NET002",
			}
		}
		return UserMessage{
			Message: "Could not reach the catalog API",
			Action:  "Check your connection and try again",
			Code:    "NET001",
		}
	}

	var ferr *NotFoundError
	if errors.As(err, &ferr) {
		return UserMessage{
			Message: "The requested product could not be found",
			Action:  "Reload the catalog; the product may have been removed",
			Code:    "CAT001",
		}
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
		Code:    "ERR000",
	}
}
