package harness

import "github.com/roach88/graycode/internal/trace"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every step matched and every property held.
	Pass bool `json:"pass"`

	// RunID is the run the trace was recorded under.
	RunID string `json:"run_id"`

	// Width is the codec width the scenario ran with.
	Width int `json:"width"`

	// Trace holds the conversions in seq order, as read back from the store.
	Trace []trace.Conversion `json:"trace"`

	// Properties holds the property check results in scenario order.
	Properties []PropertyResult `json:"properties,omitempty"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []trace.Conversion{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
