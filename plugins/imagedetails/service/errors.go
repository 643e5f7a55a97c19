package dialogservice

import "errors"

var (
	ErrInvalidURL  = errors.New("image url is not valid")
	ErrInvalidSize = errors.New("size value is not valid")
)
