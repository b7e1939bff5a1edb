package arguments

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJobs(t *testing.T) {
	cases := map[string]struct {
		value    string
		cores    int
		expected int
	}{
		"count":          {"4", 8, 4},
		"more-than-cpus": {"32", 2, 32},
		"half":           {"50%", 8, 4},
		"rounds-up":      {"50%", 3, 2},
		"rounds-down":    {"30%", 4, 1},
		"minimum-one":    {"1%", 4, 1},
		"double":         {"200%", 3, 6},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			jobs, err := ParseJobs(tc.value, tc.cores)

			assert.Nil(t, err)
			assert.Equal(t, tc.expected, jobs)
		})
	}
}

func TestParseJobs_errors(t *testing.T) {
	for _, value := range []string{"", "%", "0", "-2", "0%", "-5%", "four", "4x", "4.5", "50%%"} {
		t.Run(value, func(t *testing.T) {
			_, err := ParseJobs(value, 4)

			assert.True(t, errors.Is(err, ErrJobParse))

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
			assert.Equal(t, value, parseErr.Arg)
		})
	}
}
