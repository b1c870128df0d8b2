package shortener

import "errors"

// ErrEmptyShortURL is returned when the service answers without a short URL.
var ErrEmptyShortURL = errors.New("empty tinyurl")

// NetworkError reports that the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "Network error." }

func (e *NetworkError) Unwrap() error { return e.Err }

// EmptyResponseError reports a body that carries nothing usable: empty,
// not JSON, or a falsy JSON value such as null, false or 0. Err holds the
// decode error when there was one.
type EmptyResponseError struct {
	Service string
	Err     error
}

func (e *EmptyResponseError) Error() string { return "no response from " + e.Service }

func (e *EmptyResponseError) Unwrap() error { return e.Err }

// ServiceError carries the error message reported by the shortening service.
type ServiceError struct {
	Status  int
	Message string
}

func (e *ServiceError) Error() string { return e.Message }
