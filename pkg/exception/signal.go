package exception

import "errors"

// Signal pipeline errors
var (
	ErrInvalidSymbol        = errors.New("stock code must be 6 digits")
	ErrUnrecognizedPrefix   = errors.New("unrecognized stock code prefix")
	ErrExecutionRejected    = errors.New("execution service rejected the call")
	ErrExecutionUnreachable = errors.New("execution service unreachable")
)
