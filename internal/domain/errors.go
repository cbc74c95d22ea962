package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// StorageError wraps query/connection failures so handlers never leak raw
// driver errors to clients.
type StorageError struct {
	Op  string
	Err error
}

func (e StorageError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("storage error during %s", e.Op)
	}
	return "storage error"
}

func (e StorageError) Unwrap() error { return e.Err }

// GenerationExhaustedError is returned when booking id generation keeps
// colliding past the retry cap.
type GenerationExhaustedError struct {
	Attempts int
}

func (e GenerationExhaustedError) Error() string {
	return fmt.Sprintf("booking id generation exhausted after %d attempts", e.Attempts)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsStorage(err error) bool {
	var target StorageError
	return errors.As(err, &target)
}

func IsGenerationExhausted(err error) bool {
	var target GenerationExhaustedError
	return errors.As(err, &target)
}
