package models

import (
	"maps"
	"strings"
)

// IDField is the record field holding the record identifier.
const IDField = "id"

// ProvisionalIDPrefix marks identifiers generated locally for records created
// while the backend was unreachable. Server ids never carry this prefix.
const ProvisionalIDPrefix = "tmp-"

// Record is a generic entity record: a mapping of field name to a JSON-like
// value (string, number, bool, nested map or slice). Entity services impose
// their own field contracts on top of it.
type Record map[string]any

// ID returns the record identifier, or an empty string when the record has
// none (e.g. a create payload).
func (r Record) ID() string {
	id, _ := r[IDField].(string)
	return id
}

// Clone returns a shallow copy of r. Nested values are shared.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	return maps.Clone(r)
}

// Merge returns a copy of r with every field of patch applied on top.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	maps.Copy(out, patch)
	return out
}

// IsProvisionalID reports whether id was generated locally for a
// not-yet-synced create.
func IsProvisionalID(id string) bool {
	return strings.HasPrefix(id, ProvisionalIDPrefix)
}

// ListParams are equality filters passed to a remote list call.
type ListParams map[string]string

// Match reports whether every filter in p equals the string form of the
// corresponding record field. A nil or empty ListParams matches everything.
func (p ListParams) Match(r Record) bool {
	for k, want := range p {
		v, ok := r[k]
		if !ok {
			return false
		}
		if s, isStr := v.(string); isStr {
			if s != want {
				return false
			}
			continue
		}
		if formatScalar(v) != want {
			return false
		}
	}
	return true
}
