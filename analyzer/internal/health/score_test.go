package health

import "testing"

func TestCompute(t *testing.T) {
	std := DefaultPenalties()

	tests := []struct {
		name       string
		in         Input
		wantScore  int
		wantStatus string
	}{
		{
			name:       "perfect build",
			in:         Input{Penalties: std},
			wantScore:  100,
			wantStatus: StatusStable,
		},
		{
			// 100 - 20*0 - 10*1 = 90
			name:       "one flaky test",
			in:         Input{FlakyCount: 1, Penalties: std},
			wantScore:  90,
			wantStatus: StatusStable,
		},
		{
			// 100 - 20*1 = 80, exactly on the Stable threshold
			name:       "one failure sits on the stable boundary",
			in:         Input{FailureCount: 1, Penalties: std},
			wantScore:  80,
			wantStatus: StatusStable,
		},
		{
			// 100 - 20*2 = 60
			name:       "two failures",
			in:         Input{FailureCount: 2, Penalties: std},
			wantScore:  60,
			wantStatus: StatusUnstable,
		},
		{
			// 100 - 20*2 - 10*1 = 50, exactly on the Unstable threshold
			name:       "boundary between unstable and critical",
			in:         Input{FailureCount: 2, FlakyCount: 1, Penalties: std},
			wantScore:  50,
			wantStatus: StatusUnstable,
		},
		{
			// 100 - 20*3 = 40
			name:       "three failures",
			in:         Input{FailureCount: 3, Penalties: std},
			wantScore:  40,
			wantStatus: StatusCritical,
		},
		{
			// 100 - 20*10 = -100, clamped to 0
			name:       "score clamps at zero",
			in:         Input{FailureCount: 10, Penalties: std},
			wantScore:  0,
			wantStatus: StatusCritical,
		},
		{
			// 100 - 5*2 - 1*3 = 87 with custom penalties
			name:       "custom penalties",
			in:         Input{FailureCount: 2, FlakyCount: 3, Penalties: Penalties{Failure: 5, Flaky: 1}},
			wantScore:  87,
			wantStatus: StatusStable,
		},
		{
			// An explicit zero penalty disables the deduction; flaky tests
			// no longer touch the score.
			name:       "zero flaky penalty is honored",
			in:         Input{FlakyCount: 4, Penalties: Penalties{Failure: 20, Flaky: 0}},
			wantScore:  100,
			wantStatus: StatusStable,
		},
		{
			name:       "all penalties zero",
			in:         Input{FailureCount: 3, FlakyCount: 2},
			wantScore:  100,
			wantStatus: StatusStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.in)
			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestDefaultPenalties(t *testing.T) {
	p := DefaultPenalties()
	if p.Failure != DefaultFailurePenalty || p.Flaky != DefaultFlakyPenalty {
		t.Errorf("DefaultPenalties() = %+v, want {%d %d}",
			p, DefaultFailurePenalty, DefaultFlakyPenalty)
	}
}
