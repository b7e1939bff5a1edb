package arguments

import (
	"math"
	"strconv"
	"strings"
)

// ParseJobs converts a job count argument into the number of jobs to run at
// once. The value is either a count or a percentage of cores, for example 4
// or 50%. Percentages are rounded and never go below 1.
func ParseJobs(value string, cores int) (int, error) {
	if pct, ok := strings.CutSuffix(value, "%"); ok {
		n, err := strconv.Atoi(pct)
		if err != nil || n <= 0 {
			return 0, parseError(ErrJobParse, value)
		}

		jobs := int(math.Round(float64(cores) * float64(n) / 100))
		if jobs < 1 {
			jobs = 1
		}
		return jobs, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, parseError(ErrJobParse, value)
	}
	return n, nil
}
