package response

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Message is the payload for informational responses.
type Message struct {
	Message string `json:"message"`
}

// Error is the payload for every failure response. Clients only ever see the
// error string; internal detail stays in the server logs.
type Error struct {
	Error string `json:"error"`
}

var (
	OriginalURLRequiredResponse = Error{Error: "Original URL is required"}
	InvalidURLPrefixResponse    = Error{Error: "URL must start with http:// or https://"}
	InvalidRequestBodyResponse  = Error{Error: "Invalid request body"}
	ShortURLNotFoundResponse    = Error{Error: "Short URL not found"}
	ServerErrorResponse         = Error{Error: "Internal server error"}
)

// ValidationErrorResponse maps a validator error on the shorten request to the
// client-facing message. A failed "required" rule means the URL was missing or
// empty; any other failed rule is the scheme prefix check.
func ValidationErrorResponse(err error) Error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return InvalidRequestBodyResponse
	}

	if vErrs[0].Tag() == "required" {
		return OriginalURLRequiredResponse
	}

	return InvalidURLPrefixResponse
}
