package domain

import (
	"errors"
	"fmt"
)

// Authentication errors (401). The two credential failures are kept apart
// for diagnostics; neither message ever carries a password value.
var (
	ErrWrongUsername    = errors.New("wrong username")
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrInvalidToken     = errors.New("invalid token")
)

// Conflict errors (409)
var (
	ErrAlreadyLoggedIn = errors.New("the user is already logged in")
	ErrConflict        = errors.New("duplicate record")
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrWeakPassword = errors.New("password is too weak (at least 8 characters, [a-zA-Z0-9])")
)

// StorageError wraps any underlying storage failure so callers see a single
// terminal 500-class error with the original cause attached.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// WrapStorage returns err as-is when it is already part of the taxonomy
// (not-found, conflict) and wraps everything else in a StorageError.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
