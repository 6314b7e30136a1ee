package adapter

import "errors"

// HTTP status errors returned by [ServerAdapter] implementations.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrInternalServerError = errors.New("internal server error")
)

// Mail delivery errors.
var (
	ErrInvalidRecipient     = errors.New("invalid mail recipient")
	ErrInvalidSender        = errors.New("invalid mail sender")
	ErrSendingMail          = errors.New("error sending mail")
	ErrUnsupportedTLSPolicy = errors.New("unsupported mail tls policy")
)
