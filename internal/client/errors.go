package client

import "errors"

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingArgument  = errors.New("missing argument")
	ErrInvalidAccountID = errors.New("invalid account id")
	ErrNoConsole        = errors.New("interactive console is not available")
)
