package service

import "errors"

var (
	ErrMediaNotFound   = errors.New("media not found")
	ErrFileTooLarge    = errors.New("file size exceeds maximum allowed size")
	ErrUnsupportedType = errors.New("file type not allowed")
	ErrInvalidName     = errors.New("invalid image name")
	ErrProbeFailed     = errors.New("image dimensions could not be determined")
)
