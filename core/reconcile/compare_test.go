package reconcile

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeRemote(t *testing.T, raw string) RemoteRecord {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var r RemoteRecord
	require.NoError(t, dec.Decode(&r))
	return r
}

// TestCompare_Example tests the NAME/STATUS walkthrough: a full match passes,
// a null local status fails on status only.
func TestCompare_Example(t *testing.T) {
	mapping, err := NewFieldMapping([]FieldPair{
		{Remote: "name", Local: "NAME"},
		{Remote: "status", Local: "STATUS"},
	})
	require.NoError(t, err)

	remote := decodeRemote(t, `{"id":"A1","name":"Foo","status":"Active"}`)

	t.Run("pass", func(t *testing.T) {
		dataset := Dataset{"A1": {"NAME": "Foo", "STATUS": "Active"}}

		outcome, err := Compare(remote, dataset, "id", mapping)
		require.NoError(t, err)
		assert.Equal(t, "A1", outcome.Key)
		assert.True(t, outcome.Pass)
		assert.Empty(t, outcome.Mismatches)
	})

	t.Run("fail on null status", func(t *testing.T) {
		dataset := Dataset{"A1": {"NAME": "Foo", "STATUS": NullValue}}

		outcome, err := Compare(remote, dataset, "id", mapping)
		require.NoError(t, err)
		assert.False(t, outcome.Pass)
		assert.Equal(t, []MismatchDetail{{Field: "status", Expected: "Active", Actual: "NULL"}}, outcome.Mismatches)
		assert.Equal(t, "status: remote='Active' local='NULL'", FormatMismatches(outcome))
	})
}

// TestCompare_KeyNotFound tests that an unknown key yields exactly one mismatch.
func TestCompare_KeyNotFound(t *testing.T) {
	mapping := FieldMapping{{Remote: "name", Local: "NAME"}, {Remote: "status", Local: "STATUS"}}
	remote := decodeRemote(t, `{"id":"Z9","name":"Foo","status":"Active"}`)

	outcome, err := Compare(remote, Dataset{"A1": {"NAME": "Foo", "STATUS": "Active"}}, "id", mapping)
	require.NoError(t, err)

	assert.False(t, outcome.Pass)
	require.Len(t, outcome.Mismatches, 1)
	assert.Equal(t, KeyNotFoundField, outcome.Mismatches[0].Field)
	assert.Equal(t, "Z9", outcome.Mismatches[0].Expected)
	assert.Equal(t, "primary key 'Z9' not found in local dataset", FormatMismatches(outcome))
}

// TestCompare_CollectsAllMismatches tests that comparison does not stop at the first difference
// and that mismatches follow mapping order.
func TestCompare_CollectsAllMismatches(t *testing.T) {
	mapping := FieldMapping{
		{Remote: "status", Local: "status"},
		{Remote: "name", Local: "name"},
		{Remote: "size", Local: "size"},
	}
	remote := decodeRemote(t, `{"id":7,"name":"foo","status":"Active","size":12}`)
	dataset := Dataset{"7": {"NAME": "Foo", "STATUS": "Inactive", "SIZE": "12"}}

	outcome, err := Compare(remote, dataset, "id", mapping)
	require.NoError(t, err)

	assert.False(t, outcome.Pass)
	assert.Equal(t, []MismatchDetail{
		{Field: "status", Expected: "Active", Actual: "Inactive"},
		{Field: "name", Expected: "foo", Actual: "Foo"},
	}, outcome.Mismatches)
	assert.Equal(t, "status: remote='Active' local='Inactive'; name: remote='foo' local='Foo'", FormatMismatches(outcome))
}

// TestCompare_ValueRendering tests how remote values are matched against local strings.
func TestCompare_ValueRendering(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		local  string
		pass   bool
	}{
		{"integer", `{"id":"k","v":42}`, "42", true},
		{"decimal keeps text", `{"id":"k","v":1.50}`, "1.50", true},
		{"boolean", `{"id":"k","v":true}`, "true", true},
		{"json null equals sentinel", `{"id":"k","v":null}`, NullValue, true},
		{"absent equals sentinel", `{"id":"k"}`, NullValue, true},
		{"empty string is not null", `{"id":"k","v":""}`, NullValue, false},
		{"case sensitive", `{"id":"k","v":"abc"}`, "ABC", false},
		{"nested object", `{"id":"k","v":{"a":1}}`, `{"a":1}`, true},
	}

	mapping := FieldMapping{{Remote: "v", Local: "v"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataset := Dataset{"k": {"V": tt.local}}
			outcome, err := Compare(decodeRemote(t, tt.remote), dataset, "id", mapping)
			require.NoError(t, err)
			assert.Equal(t, tt.pass, outcome.Pass)
		})
	}
}

// TestCompare_MissingLocalField tests that a mapped column absent from the local record is an error.
func TestCompare_MissingLocalField(t *testing.T) {
	mapping := FieldMapping{{Remote: "name", Local: "NAME"}, {Remote: "color", Local: "COLOUR"}}
	remote := decodeRemote(t, `{"id":"A1","name":"Foo","color":"red"}`)

	_, err := Compare(remote, Dataset{"A1": {"NAME": "Foo"}}, "id", mapping)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataIntegrity)
	assert.Contains(t, err.Error(), "COLOUR")
	assert.Contains(t, err.Error(), "A1")
}

// TestCompare_NestedPrimaryKey tests dotted primary key paths.
func TestCompare_NestedPrimaryKey(t *testing.T) {
	mapping := FieldMapping{{Remote: "meta.name", Local: "NAME"}}
	remote := decodeRemote(t, `{"meta":{"id":"N1","name":"x"}}`)

	outcome, err := Compare(remote, Dataset{"N1": {"NAME": "x"}}, "meta.id", mapping)
	require.NoError(t, err)
	assert.True(t, outcome.Pass)
}

// TestCompare_MissingPrimaryKey tests that a remote record without a key value is an error.
func TestCompare_MissingPrimaryKey(t *testing.T) {
	mapping := FieldMapping{{Remote: "name", Local: "NAME"}}
	dataset := Dataset{"NULL": {"NAME": "a"}}

	for _, raw := range []string{`{"name":"a"}`, `{"id":null,"name":"a"}`} {
		t.Run(raw, func(t *testing.T) {
			_, err := Compare(decodeRemote(t, raw), dataset, "id", mapping)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDataIntegrity)
			assert.Contains(t, err.Error(), `"id"`)
		})
	}

	outcome, err := Compare(decodeRemote(t, `{"id":"NULL","name":"a"}`), dataset, "id", mapping)
	require.NoError(t, err)
	assert.True(t, outcome.Pass, "a literal NULL string is a key like any other")
}
