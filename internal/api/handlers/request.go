package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

var (
	// ErrEmptyBody is returned when a JSON body is required but missing
	ErrEmptyBody = errors.New("handlers: empty request body")

	// ErrInvalidPathParam is returned when a path variable is not a UUID
	ErrInvalidPathParam = errors.New("handlers: invalid path parameter")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON decodes the request body into dst and runs its `validate` tags
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	return Validate(dst)
}

// Validate checks the `validate` struct tags of v
func Validate(v interface{}) error {
	return validate.Struct(v)
}

// PathUUID parses the mux path variable name as a UUID
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: %s is missing", ErrInvalidPathParam, name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %v", ErrInvalidPathParam, name, err)
	}
	return id, nil
}

// ParseOptionalUUID parses s when it is not empty
func ParseOptionalUUID(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
