package api

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes for errors surfaced to webhook callers.
const (
	TextCodeInvalidJSON     = "INVALID_JSON"
	TextCodeMissingEvent    = "MISSING_EVENT"
	TextCodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	TextCodeUnexpectedFault = "UNEXPECTED_FAULT"
)

// Messages returned in the JSON error body.
const (
	msgInvalidJSON     = "Invalid JSON"
	msgMissingEvent    = "Missing event object"
	msgPayloadTooLarge = "Payload too large"
)

func malformedPayload(source error, message, textCode string) *goerrors.Error {
	return goerrors.Wrap(source, goerrors.CategoryBadInput, message).
		WithCode(http.StatusBadRequest).
		WithTextCode(textCode)
}

func payloadTooLarge(source error) *goerrors.Error {
	return goerrors.Wrap(source, goerrors.CategoryBadInput, msgPayloadTooLarge).
		WithCode(http.StatusRequestEntityTooLarge).
		WithTextCode(TextCodePayloadTooLarge)
}

// unexpectedFault keeps the source description as the message; callers see
// it in the 500 body.
func unexpectedFault(source error) *goerrors.Error {
	return goerrors.Wrap(source, goerrors.CategoryInternal, source.Error()).
		WithCode(http.StatusInternalServerError).
		WithTextCode(TextCodeUnexpectedFault)
}
