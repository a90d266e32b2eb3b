package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSuperseded         = errors.New("superseded by a newer login or logout")
)
