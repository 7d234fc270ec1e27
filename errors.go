package bloomkit

import "errors"

var (
	// ErrKeyNotPresent is returned by Delete when the key isn't in the filter.
	ErrKeyNotPresent = errors.New("bloomkit: key is not present")

	// ErrIncompatibleFilters is returned by Merge when the filters differ in
	// bucket count or hash count.
	ErrIncompatibleFilters = errors.New("bloomkit: filters are not compatible")

	// ErrInvalidData is returned when a serialized header can't describe a filter.
	ErrInvalidData = errors.New("bloomkit: invalid serialized data")

	// ErrFilterTooLarge is returned by WriteTo when the filter can't be
	// described by the serialized header.
	ErrFilterTooLarge = errors.New("bloomkit: filter too large to serialize")
)
