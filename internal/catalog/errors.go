package catalog

import "errors"

// ErrNotFound matches every lookup that came back empty.
var ErrNotFound = errors.New("not found")

type notFoundError struct {
	msg string
}

func (e notFoundError) Error() string { return e.msg }

func (e notFoundError) Is(target error) bool { return target == ErrNotFound }

var (
	ErrBookNotFound  error = notFoundError{"book not found"}
	ErrNoReviews     error = notFoundError{"no reviews found"}
	ErrNoAuthorBooks error = notFoundError{"no books found for author"}
)
