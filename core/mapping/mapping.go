package mapping

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"data-reconciler/core/reconcile"
)

// Load reads and validates the mapping file at path.
func Load(path string) (reconcile.FieldMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, reconcile.ConfigurationError("load mapping", fmt.Errorf("mapping file %s does not exist", path))
		}
		return nil, reconcile.ConfigurationError("load mapping", fmt.Errorf("failed to open %s: %w", path, err))
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

// Parse reads mapping declarations from r.
func Parse(r io.Reader) (reconcile.FieldMapping, error) {
	var (
		pairs []reconcile.FieldPair
		lines = make(map[string]int)
		num   int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		num++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}

		remote, local, ok := split(line)
		if !ok {
			return nil, reconcile.ConfigurationError("parse mapping", fmt.Errorf("line %d: expected remote=local, got %q", num, line))
		}
		if remote == "" || local == "" {
			return nil, reconcile.ConfigurationError("parse mapping", fmt.Errorf("line %d: empty field name in %q", num, line))
		}
		if prev, dup := lines[remote]; dup {
			return nil, reconcile.ConfigurationError("parse mapping",
				fmt.Errorf("remote field %q declared on lines %d and %d", remote, prev, num))
		}
		lines[remote] = num
		pairs = append(pairs, reconcile.FieldPair{Remote: remote, Local: local})
	}
	if err := scanner.Err(); err != nil {
		return nil, reconcile.ConfigurationError("parse mapping", fmt.Errorf("failed to read mapping: %w", err))
	}

	if len(pairs) == 0 {
		return nil, reconcile.ConfigurationError("parse mapping", fmt.Errorf("no field pairs declared"))
	}

	return reconcile.NewFieldMapping(pairs)
}

// split cuts a declaration at the first '=' or ':', whichever comes first.
func split(line string) (string, string, bool) {
	idx := strings.IndexAny(line, "=:")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
}
