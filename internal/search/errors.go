package search

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryUnreadable reports that a directory could not be listed,
	// for example because of missing permissions or because it vanished
	// while the crawl was running.
	ErrDirectoryUnreadable = errors.New("directory unreadable")

	// ErrInvalidPath reports a crawl root that does not exist or is not a
	// directory.
	ErrInvalidPath = errors.New("invalid path")
)

// CrawlError describes a crawl failure for a single path. It matches both
// its Kind (one of the sentinel errors above) and the underlying cause with
// errors.Is.
type CrawlError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *CrawlError) Error() string {
	cause := e.Err
	if cause == nil {
		cause = e.Kind
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, cause)
}

func (e *CrawlError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
