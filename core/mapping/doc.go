// Package mapping loads the ordered remote-to-local field mapping of a profile.
//
// The file format is a subset of Java properties: one "remote=local" (or
// "remote: local") declaration per line, "#" and "!" comment lines, blank lines
// ignored. Declaration order is preserved since it drives both the comparison
// order and the column order of success reports.
//
// # Usage
//
//	m, err := mapping.Load("resources/assets_mapping.properties")
//	if err != nil {
//	    return err
//	}
//	cols := m.LocalColumns()
package mapping
