package scheme

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedTheme is matched by every UnsupportedThemeError.
	ErrUnsupportedTheme = errors.New("unsupported theme")
	// ErrUnknownTheme is returned when parsing a name outside the built-in set.
	ErrUnknownTheme = errors.New("unknown theme")
)

// UnsupportedThemeError reports a renderer kind with a style table that has
// no entry for the requested theme.
type UnsupportedThemeError struct {
	Kind  Kind
	Theme Theme
}

func (e *UnsupportedThemeError) Error() string {
	return fmt.Sprintf("%s: %s %q", e.Kind, ErrUnsupportedTheme, string(e.Theme))
}

// Is lets errors.Is match against ErrUnsupportedTheme.
func (e *UnsupportedThemeError) Is(target error) bool {
	return target == ErrUnsupportedTheme
}
