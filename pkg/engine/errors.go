package engine

import (
	"errors"
	"fmt"
)

// Errors returned by the engine. Every call fails with at most one of them.
var (
	ErrMapNotInitialized    = errors.New("map not initialized")
	ErrInvalidMapSize       = errors.New("invalid map size")
	ErrTooManyMaps          = errors.New("too many maps")
	ErrOutOfBounds          = errors.New("location out of bounds")
	ErrInvalidFlag          = errors.New("invalid flag used")
	ErrProjectionFailed     = errors.New("projection failed")
	ErrTooManyPathMaps      = errors.New("unable to create path map: too many maps")
	ErrUninitializedPathMap = errors.New("uninitialized path map used")
	ErrNoPath               = errors.New("found no path")
	ErrIllegalRadius        = errors.New("illegal radius")
	ErrInvalidAlgorithm     = errors.New("invalid algorithm")
	ErrNoLocation           = errors.New("found no location")

	ErrProjectionOrigin      = fmt.Errorf("%w: origin invalid", ErrProjectionFailed)
	ErrProjectionDestination = fmt.Errorf("%w: destination invalid", ErrProjectionFailed)
)

// messages holds the fixed text a binding layer reports for each error.
// More specific errors come first.
var messages = []struct {
	err error
	msg string
}{
	{ErrMapNotInitialized, "Map not initialized"},
	{ErrInvalidMapSize, "Invalid map size"},
	{ErrTooManyMaps, "Too many maps"},
	{ErrOutOfBounds, "Location out of bounds"},
	{ErrInvalidFlag, "Invalid flag used"},
	{ErrProjectionOrigin, "Projection failed: origin invalid"},
	{ErrProjectionDestination, "Projection failed: destination invalid"},
	{ErrProjectionFailed, "Projection failed"},
	{ErrTooManyPathMaps, "Unable to create pathmap: Too many maps"},
	{ErrUninitializedPathMap, "Uninitialized pathmap used"},
	{ErrNoPath, "Found no path"},
	{ErrIllegalRadius, "Illegal radius"},
	{ErrInvalidAlgorithm, "Invalid algorithm"},
	{ErrNoLocation, "Found no location"},
}

// Message returns the fixed message for err. Errors that did not come from
// the engine are reported with their own text; nil gives "".
func Message(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}
