package cangjie

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version selects a revision of the Cangjie input method. More versions may
// be added; callers should not assume V3 and V5 are the only values.
type Version uint8

const (
	V3 Version = iota + 1
	V5
)

// ErrUnknownVersion is returned for versions this package cannot map to the
// lookup table.
var ErrUnknownVersion = errors.New("cangjie: unknown version")

// Discriminator returns the integer libcangjie stores in its version column.
func (v Version) Discriminator() (int, bool) {
	switch v {
	case V3:
		return 3, true
	case V5:
		return 5, true
	}
	return 0, false
}

// VersionOf returns the version stored as n in the lookup table.
func VersionOf(n int) (Version, error) {
	switch n {
	case 3:
		return V3, nil
	case 5:
		return V5, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownVersion, n)
}

// ParseVersion accepts "3", "5", and the same with a leading "v" or "V".
func ParseVersion(s string) (Version, error) {
	t := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "v"), "V")
	n, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, s)
	}
	return VersionOf(n)
}

func (v Version) String() string {
	if n, ok := v.Discriminator(); ok {
		return strconv.Itoa(n)
	}
	return fmt.Sprintf("Version(%d)", uint8(v))
}
