package service

import "errors"

// Caller-correctable failure kinds. Anything else that comes out of a
// service (store failures included) propagates unwrapped.
var (
	ErrBookNotFound       = errors.New("book does not exist")
	ErrBookAlreadyExists  = errors.New("book already exists")
	ErrBookClosed         = errors.New("book is closed")
	ErrBookOpen           = errors.New("book is still open")
	ErrOrderAlreadyExists = errors.New("order already exists")
	ErrOrderUnknown       = errors.New("unknown order id")
	ErrOrderNotAvailable  = errors.New("order is not available")
	ErrInactiveOrder      = errors.New("order is not active")
)
