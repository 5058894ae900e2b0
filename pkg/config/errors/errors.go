package errors

import "errors"

var (
	ErrBadPort            = errors.New("bad port")
	ErrEmptyRoot          = errors.New("empty root directory")
	ErrBadDefaultResource = errors.New("bad default resource")
	ErrUndecodedKeys      = errors.New("undecoded config file keys")
	ErrNilConfig          = errors.New("nil config")
)
