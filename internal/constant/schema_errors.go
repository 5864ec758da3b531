package constant

import "errors"

var (
	ErrThreadNotFound     = errors.New("thread not found")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")
)
