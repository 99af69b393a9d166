package services

import (
	"DentalCenter/repositories"
	"errors"
)

var (
	ErrNotFound           = repositories.ErrNotFound
	ErrEmailTaken         = repositories.ErrEmailTaken
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("current password is incorrect")
	ErrInactiveAccount    = errors.New("account is inactive")
)
