package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// NotFoundError keeps a resource-specific message while staying matchable
// with errors.Is(err, ErrorRecordNotFound).
func NotFoundError(resource string) error {
	return fmt.Errorf("%s: %w", resource, ErrorRecordNotFound)
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
