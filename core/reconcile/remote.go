package reconcile

import (
	"encoding/json"
	"strconv"
	"strings"

	"data-reconciler/core/utils"
)

// RemoteRecord is one decoded JSON object from a remote page.
// Numbers are expected to be decoded as json.Number so their textual form is kept.
type RemoteRecord map[string]any

// Value resolves a dotted path (e.g. "owner.name" or "tags.0") and renders the
// value as a string. Absent fields and JSON null yield NullValue.
func (r RemoteRecord) Value(path string) string {
	v, ok := lookup(map[string]any(r), path)
	if !ok || v == nil {
		return NullValue
	}
	return render(v)
}

// Lookup is like Value but reports whether the path exists.
func (r RemoteRecord) Lookup(path string) (string, bool) {
	v, ok := lookup(map[string]any(r), path)
	if !ok {
		return "", false
	}
	if v == nil {
		return NullValue, true
	}
	return render(v), true
}

// Get returns the decoded value at path as is.
func (r RemoteRecord) Get(path string) (any, bool) {
	return lookup(map[string]any(r), path)
}

func lookup(root map[string]any, path string) (any, bool) {
	// A literal key wins over path traversal, so "a.b" as a flat key still resolves.
	if v, ok := root[path]; ok {
		return v, true
	}

	var cur any = root
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

func render(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return utils.ToString(val)
		}
		return string(b)
	default:
		return utils.ToString(val)
	}
}
