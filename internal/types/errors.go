package types

import (
	"errors"
	"fmt"
)

// FetchError covers everything that can go wrong talking to a source
// endpoint: network failure, timeout and non-2xx statuses. It never
// escapes the per-source pipeline; the aggregator records it and moves on.
type FetchError struct {
	Source string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Source, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

// ParseError marks a payload that could not be decoded as any supported
// feed dialect. Like FetchError it is recovered locally: the source is
// excluded from the merge.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// AggregateError is the only failure surfaced to callers: every source
// selected for the pass returned an error.
type AggregateError struct {
	Sources int
	Failed  int
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("all sources failed (%d/%d)", e.Failed, e.Sources)
}

func IsAggregateError(err error) bool {
	var ae *AggregateError
	return errors.As(err, &ae)
}
