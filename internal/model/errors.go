package model

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindTransport     ErrorKind = "transport"
	KindParse         ErrorKind = "parse"
	KindQuota         ErrorKind = "quota"
	KindValidation    ErrorKind = "validation"
	KindUnknown       ErrorKind = "unknown"
)

// ConfigurationError means a source's prerequisite (usually a credential) is not met.
type ConfigurationError struct {
	Source string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: not configured: %s", e.Source, e.Reason)
}

// TransportError covers network failures, timeouts and non-2xx responses.
type TransportError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means the provider answered but the body had an unexpected shape.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// QuotaError means the daily request budget for a source is spent.
type QuotaError struct {
	Source string
	Used   int64
	Limit  int64
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s: daily quota exhausted (%d/%d)", e.Source, e.Used, e.Limit)
}

// ValidationError is the only error the aggregator returns to callers.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// KindOf classifies err into the manifest taxonomy.
func KindOf(err error) ErrorKind {
	var (
		cfgErr *ConfigurationError
		tErr   *TransportError
		pErr   *ParseError
		qErr   *QuotaError
		vErr   *ValidationError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &cfgErr):
		return KindConfiguration
	case errors.As(err, &qErr):
		return KindQuota
	case errors.As(err, &vErr):
		return KindValidation
	case errors.As(err, &pErr):
		return KindParse
	case errors.As(err, &tErr):
		return KindTransport
	default:
		return KindUnknown
	}
}

func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
