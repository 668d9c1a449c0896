package alerts

import (
	"testing"

	"github.com/buildhealth/buildhealth/pkg/summary"
)

func testPayload(score int, status string, failures, flaky int, duration float64) summary.Payload {
	p := summary.New()
	p.Summary = summary.Overview{Score: score, Status: status, TotalDuration: duration}
	for i := 0; i < failures; i++ {
		p.CurrentFailures = append(p.CurrentFailures, summary.Failure{Test: "t", Error: "e"})
	}
	for i := 0; i < flaky; i++ {
		p.FlakyTests = append(p.FlakyTests, "f")
	}
	return p
}

func TestEvalCondition(t *testing.T) {
	p := testPayload(45, "Critical", 2, 3, 120.5)

	tests := []struct {
		cond      string
		wantFires bool
		wantValue float64
	}{
		{"score < 50", true, 45},
		{"score < 40", false, 45},
		{"score <= 45", true, 45},
		{"score >= 45", true, 45},
		{"score == 45", true, 45},
		{"failure_count > 0", true, 2},
		{"failure_count > 2", false, 2},
		{"flaky_count > 2", true, 3},
		{"total_duration > 60", true, 120.5},
		{"total_duration > 600", false, 120.5},
		{"status == Critical", true, 0},
		{"status == Stable", false, 0},
		// Malformed or unknown expressions never fire.
		{"status != Critical", false, 0},
		{"score <", false, 0},
		{"unknown_field > 1", false, 0},
		{"score > abc", false, 0},
		{"", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			fires, value := evalCondition(tt.cond, p)
			if fires != tt.wantFires {
				t.Errorf("fires = %v, want %v", fires, tt.wantFires)
			}
			if fires && value != tt.wantValue {
				t.Errorf("value = %v, want %v", value, tt.wantValue)
			}
		})
	}
}
