package services

import "fmt"

// FetchErrorKind classifies catalog failures
type FetchErrorKind string

// Fetch error kinds
const (
	KindNetwork FetchErrorKind = "network"
	KindHTTP    FetchErrorKind = "http"
	KindParse   FetchErrorKind = "parse"
)

// FetchError is returned for any failed catalog request. Status is zero
// unless the server answered.
type FetchError struct {
	Kind    FetchErrorKind
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
