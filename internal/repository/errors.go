package repository

import "errors"

// ErrDuplicateEmail is returned by UserRepository.Create.
var ErrDuplicateEmail = errors.New("email already registered")
