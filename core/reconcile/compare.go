package reconcile

import (
	"fmt"
	"strings"
)

// KeyNotFoundField is the field name used for the single mismatch reported
// when a remote primary key is missing from the local dataset.
const KeyNotFoundField = "primary_key"

// Compare checks one remote record against its local counterpart.
//
// A remote record without a primary key value is a data integrity error. A
// remote key absent from the dataset yields a failed outcome with a single
// "not found" mismatch. Otherwise every pair of the mapping is compared in order
// as exact strings and every difference is collected. A mapped local field that
// is missing from the local record entirely returns a data integrity error: it
// points at a broken mapping, not at a bad record.
func Compare(remote RemoteRecord, dataset Dataset, primaryKeyField string, mapping FieldMapping) (RecordOutcome, error) {
	if raw, ok := remote.Get(primaryKeyField); !ok || raw == nil {
		return RecordOutcome{}, DataIntegrityError("compare",
			fmt.Errorf("remote record has no value for primary key field %q", primaryKeyField))
	}
	key := remote.Value(primaryKeyField)

	outcome := RecordOutcome{
		Key:        key,
		Pass:       true,
		Mismatches: []MismatchDetail{},
	}

	local, ok := dataset[key]
	if !ok {
		outcome.Pass = false
		outcome.Mismatches = append(outcome.Mismatches, MismatchDetail{
			Field:    KeyNotFoundField,
			Expected: key,
			Actual:   "not found in local dataset",
		})
		return outcome, nil
	}

	for _, pair := range mapping {
		expected := remote.Value(pair.Remote)

		actual, present := local[upper(pair.Local)]
		if !present {
			return RecordOutcome{}, DataIntegrityError("compare",
				fmt.Errorf("local record %q has no field %q mapped from %q", key, upper(pair.Local), pair.Remote))
		}

		if expected != actual {
			outcome.Pass = false
			outcome.Mismatches = append(outcome.Mismatches, MismatchDetail{
				Field:    pair.Remote,
				Expected: expected,
				Actual:   actual,
			})
		}
	}

	return outcome, nil
}

// FormatMismatches renders the mismatches of an outcome as one line,
// e.g. "status: remote='Active' local='NULL'; name: remote='Foo' local='Bar'".
func FormatMismatches(outcome RecordOutcome) string {
	if len(outcome.Mismatches) == 0 {
		return ""
	}

	if len(outcome.Mismatches) == 1 && outcome.Mismatches[0].Field == KeyNotFoundField {
		return fmt.Sprintf("primary key '%s' not found in local dataset", outcome.Key)
	}

	parts := make([]string, 0, len(outcome.Mismatches))
	for _, m := range outcome.Mismatches {
		parts = append(parts, fmt.Sprintf("%s: remote='%s' local='%s'", m.Field, m.Expected, m.Actual))
	}
	return strings.Join(parts, "; ")
}

func upper(s string) string {
	return strings.ToUpper(s)
}
