package alerts

import (
	"strconv"
	"strings"

	"github.com/buildhealth/buildhealth/pkg/summary"
)

// evalCondition evaluates a rule condition string against a build summary.
//
// Supported expressions (field operator value):
//
//	score < 50
//	failure_count > 0
//	flaky_count > 3
//	total_duration > 600
//	status == Critical
//	status == Unstable
//
// Returns (fires bool, triggering value float64).
// Returns (false, 0) if the expression cannot be parsed or the field is
// unknown.
func evalCondition(cond string, p summary.Payload) (bool, float64) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return false, 0
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	if field == "status" {
		if op == "==" {
			return p.Summary.Status == rhs, 0
		}
		return false, 0
	}

	v, ok := numericField(field, p)
	if !ok {
		return false, 0
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return false, 0
	}
	return compareFloat(v, op, threshold), v
}

// numericField maps a field name to its value in the summary.
func numericField(field string, p summary.Payload) (float64, bool) {
	switch field {
	case "score":
		return float64(p.Summary.Score), true
	case "failure_count":
		return float64(len(p.CurrentFailures)), true
	case "flaky_count":
		return float64(len(p.FlakyTests)), true
	case "total_duration":
		return p.Summary.TotalDuration, true
	default:
		return 0, false
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
