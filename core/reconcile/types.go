package reconcile

import "fmt"

// NullValue is the sentinel stored for fields that hold no value (SQL NULL,
// JSON null, or an absent remote field).
const NullValue = "NULL"

// Record is a flat record keyed by upper-cased field name.
// Records are never modified once built.
type Record map[string]string

// Dataset maps a primary-key value to exactly one local Record.
type Dataset map[string]Record

// FieldPair links a remote field name to a local field name.
type FieldPair struct {
	// Remote is the field name (or dotted path) in the remote record.
	Remote string `json:"remote"`
	// Local is the field name in the local dataset. It is upper-cased before lookup.
	Local string `json:"local"`
}

// FieldMapping is the ordered list of field pairs. The order drives both
// comparison order and report column order.
type FieldMapping []FieldPair

// NewFieldMapping validates pairs and returns them as a FieldMapping.
// An empty list or a remote field declared twice is a configuration error.
func NewFieldMapping(pairs []FieldPair) (FieldMapping, error) {
	if len(pairs) == 0 {
		return nil, newError(ErrConfiguration, "field mapping", fmt.Errorf("mapping is empty"))
	}

	seen := make(map[string]int, len(pairs))
	for i, p := range pairs {
		if p.Remote == "" || p.Local == "" {
			return nil, newError(ErrConfiguration, "field mapping", fmt.Errorf("pair %d has an empty field name", i+1))
		}
		if prev, ok := seen[p.Remote]; ok {
			return nil, newError(ErrConfiguration, "field mapping",
				fmt.Errorf("remote field %q declared twice (pairs %d and %d)", p.Remote, prev+1, i+1))
		}
		seen[p.Remote] = i
	}

	mapping := make(FieldMapping, len(pairs))
	copy(mapping, pairs)
	return mapping, nil
}

// LocalColumns returns the upper-cased local field names in mapping order.
func (m FieldMapping) LocalColumns() []string {
	cols := make([]string, len(m))
	for i, p := range m {
		cols[i] = upper(p.Local)
	}
	return cols
}

// MismatchDetail describes one field that differs between the remote and local record.
type MismatchDetail struct {
	// Field is the remote field name.
	Field string `json:"field"`
	// Expected is the value found in the remote record.
	Expected string `json:"expected"`
	// Actual is the value found in the local dataset.
	Actual string `json:"actual"`
}

// RecordOutcome is the comparison result for one remote record.
type RecordOutcome struct {
	// Key is the primary-key value of the remote record.
	Key string `json:"key"`
	// Pass is true when every mapped field matched.
	Pass bool `json:"pass"`
	// Mismatches lists every differing field in mapping order. Empty iff Pass.
	Mismatches []MismatchDetail `json:"mismatches"`
}

// Failure is a failing primary key with its formatted mismatch summary.
type Failure struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
}

// RunAggregate is the complete tally of one reconciliation run.
type RunAggregate struct {
	TotalValidated int `json:"total_validated"`
	TotalPass      int `json:"total_pass"`
	TotalFail      int `json:"total_fail"`

	// Failures maps a failing primary key to its mismatch summary.
	Failures map[string]string `json:"failures"`

	// FailureKeys holds the failing keys in encounter order.
	FailureKeys []string `json:"failure_keys"`

	// Successes holds the local records of passing keys in encounter order.
	Successes []Record `json:"-"`

	// Pages is the number of pages fetched.
	Pages int `json:"pages"`

	// Offset is the offset the next page would have been requested at.
	Offset int `json:"offset"`

	OverallPass bool `json:"overall_pass"`
}

// NewRunAggregate returns an empty aggregate.
func NewRunAggregate() *RunAggregate {
	return &RunAggregate{
		Failures:    make(map[string]string),
		FailureKeys: []string{},
		Successes:   []Record{},
		OverallPass: true,
	}
}

// OrderedFailures returns the failures in encounter order.
func (a *RunAggregate) OrderedFailures() []Failure {
	out := make([]Failure, 0, len(a.FailureKeys))
	for _, k := range a.FailureKeys {
		out = append(out, Failure{Key: k, Summary: a.Failures[k]})
	}
	return out
}

// add folds one outcome into the aggregate.
func (a *RunAggregate) add(outcome RecordOutcome, local Record) {
	a.TotalValidated++
	if outcome.Pass {
		a.TotalPass++
		a.Successes = append(a.Successes, local)
	} else {
		a.TotalFail++
		a.FailureKeys = append(a.FailureKeys, outcome.Key)
		a.Failures[outcome.Key] = FormatMismatches(outcome)
	}
	a.OverallPass = a.TotalFail == 0
}

// Page is one slice of the remote dataset.
type Page struct {
	// Records holds the remote records in response order.
	Records []RemoteRecord
	// Total is the remote population size hint, nil when the response had none.
	Total *int
}
