package summary

// Payload is the published build-health document. Its JSON shape is the
// contract with external consumers (Jira entity-property readers, the
// dashboard server) and must stay stable.
type Payload struct {
	Summary         Overview  `json:"summary"`
	FlakyTests      []string  `json:"flakyTests"`
	CurrentFailures []Failure `json:"currentFailures"`
}

// Overview is the scalar half of the payload.
type Overview struct {
	// Score is the bounded health score, always in [0, 100].
	Score int `json:"score"`

	// Status is one of "Stable", "Unstable", "Critical".
	Status string `json:"status"`

	// TotalDuration is the wall time of the latest report batch in seconds,
	// rounded to 2 decimal places.
	TotalDuration float64 `json:"totalDuration"`
}

// Failure is one currently failing test with its cleaned error message.
type Failure struct {
	Test  string `json:"test"`
	Error string `json:"error"`
}

// Envelope wraps a Payload with its summary key for dashboard ingest.
// The key is the same identifier used for the Jira entity property, so one
// build maps to one dashboard entry regardless of sink.
type Envelope struct {
	Key     string  `json:"key"`
	Payload Payload `json:"payload"`
}

// New returns an empty Payload with collections allocated, so that an
// all-green (or all-empty) build serializes flakyTests and currentFailures
// as [] rather than null.
func New() Payload {
	return Payload{
		FlakyTests:      []string{},
		CurrentFailures: []Failure{},
	}
}
