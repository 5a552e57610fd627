package status

import (
	"strconv"
	"strings"
)

// Version is a two-component application version. The zero minor component
// is not rendered, so "1.0" and "1" refer to the same version.
type Version struct {
	Major uint64
	Minor uint64
}

func (v Version) String() string {
	if v.Minor == 0 {
		return strconv.FormatUint(v.Major, 10)
	}

	return strconv.FormatUint(v.Major, 10) +
		"." + strconv.FormatUint(v.Minor, 10)
}

// ParseVersion parses a version string on the form "N" or "N.M", where N and
// M are decimal numbers and N is 1 or greater. Nothing but digits and a
// single separating dot is accepted. Leading zeroes are not significant, so
// "01" and "1.01" parse to the same versions as "1" and "1.1".
func ParseVersion(s string) (Version, error) {
	majorS, minorS, hasMinor := strings.Cut(s, ".")

	major, err := strconv.ParseUint(majorS, 10, 64)
	if err != nil {
		return Version{}, TrackerErrorf(ErrCodeInvalidVersion,
			"invalid version %q: not a dotted pair of numbers", s)
	}

	if major < 1 {
		return Version{}, TrackerErrorf(ErrCodeInvalidVersion,
			"invalid version %q: major version must be 1 or greater", s)
	}

	var minor uint64

	if hasMinor {
		minor, err = strconv.ParseUint(minorS, 10, 64)
		if err != nil {
			return Version{}, TrackerErrorf(ErrCodeInvalidVersion,
				"invalid version %q: not a dotted pair of numbers", s)
		}
	}

	return Version{Major: major, Minor: minor}, nil
}
