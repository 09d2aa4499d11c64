package utils

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

// DereferencePtr returns the zero value when the pointer is nil.
func DereferencePtr[T any](ptr *T) T {
	var value T
	if ptr != nil {
		value = *ptr
	}
	return value
}

func Ptr[T any](v T) *T {
	return &v
}
