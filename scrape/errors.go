package scrape

import (
	"errors"
	"fmt"
)

var (
	ErrNotNumeric       = errors.New("not numeric")
	ErrNegativeQuantity = errors.New("negative quantity")
	ErrElementNotFound  = errors.New("element not found")
	ErrLootOutOfRange   = errors.New("loot outside 0-100%")
)

// ParseError reports a page whose structure or values did not match what a
// translator expects.
type ParseError struct {
	Page    string // page kind name
	Element string // selector or field being read
	Value   string // offending text, if any
	Err     error
}

func (e *ParseError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("parse %s page: %s %q: %v", e.Page, e.Element, e.Value, e.Err)
	}
	return fmt.Sprintf("parse %s page: %s: %v", e.Page, e.Element, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func missing(pageName, element string) error {
	return &ParseError{Page: pageName, Element: element, Err: ErrElementNotFound}
}
