// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package records

// Field is one named string attribute of a record.
type Field struct {
	Name  string
	Value string
}

// Record is implemented by every schema record type. Fields returns
// the attributes in their canonical output order; the names match the
// record's JSON field names.
type Record interface {
	RecordID() string
	Fields() []Field
}

// widen converts a concrete record map into the interface-typed map
// that [Schema] returns.
func widen[R Record](set map[string]R) map[string]Record {
	result := make(map[string]Record, len(set))
	for key, record := range set {
		result[key] = record
	}
	return result
}
