package status_test

import (
	"testing"

	"github.com/barabarinov/test-varsion-app/internal/test"
	"github.com/barabarinov/test-varsion-app/status"
)

func TestParseVersion(t *testing.T) {
	valid := map[string]status.Version{
		"1":     {Major: 1},
		"1.0":   {Major: 1},
		"1.2":   {Major: 1, Minor: 2},
		"2":     {Major: 2},
		"10.13": {Major: 10, Minor: 13},
		"01":    {Major: 1},
		"1.01":  {Major: 1, Minor: 1},
	}

	for in, want := range valid {
		got, err := status.ParseVersion(in)
		test.Must(t, err, "parse %q", in)

		test.Equal(t, want, got, "get the expected version for %q", in)
	}

	invalid := []string{
		"", "invalid", "0", "0.1", "1.2.3", "1.", ".2", ".",
		"-1", "1.-2", "+1", "v1", "1 ", " 1", "1_000", "5x",
	}

	for _, in := range invalid {
		_, err := status.ParseVersion(in)
		test.MustNot(t, err, "parse of %q must fail", in)

		if !status.IsTrackerErrorCode(err, status.ErrCodeInvalidVersion) {
			t.Fatalf("expected invalid-version error for %q, got: %v",
				in, err)
		}
	}
}

func TestVersionString(t *testing.T) {
	cases := map[string]status.Version{
		"1":    {Major: 1},
		"1.1":  {Major: 1, Minor: 1},
		"3.12": {Major: 3, Minor: 12},
		"7":    {Major: 7},
	}

	for want, version := range cases {
		test.Equal(t, want, version.String(),
			"render %#v", version)
	}
}
