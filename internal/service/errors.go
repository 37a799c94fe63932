package service

import "errors"

var (
	ErrUnknownRover = errors.New("unknown rover")
	ErrNoSnapshot   = errors.New("no mars time snapshot available")
)
