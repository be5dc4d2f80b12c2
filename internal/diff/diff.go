// Package diff compares two brand-voice version snapshots field by field and
// produces a typed delta for the console's comparison view. Everything in
// this package is pure computation: no I/O, no shared state.
package diff

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/voicehub/voicehub/pkg/models"
)

// ChangeType classifies a single field difference.
type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeRemoved   ChangeType = "removed"
	ChangeModified  ChangeType = "modified"
	ChangeUnchanged ChangeType = "unchanged"
)

// FieldDescriptor names one comparable field: a dotted path into the version
// snapshot plus the label the UI renders for it.
type FieldDescriptor struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

// DefaultFields returns the console's standard comparison field list, in
// display order.
func DefaultFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Path: "name", Label: "Name"},
		{Path: "description", Label: "Description"},
		{Path: "voice_metadata.personality", Label: "Personality"},
		{Path: "voice_metadata.tonality", Label: "Tonality"},
		{Path: "dos", Label: "Do's"},
		{Path: "donts", Label: "Don'ts"},
		{Path: "status", Label: "Status"},
	}
}

// FieldDiff is one detected difference. Unchanged fields are never
// materialized.
type FieldDiff struct {
	Field    string     `json:"field"`
	Label    string     `json:"label"`
	OldValue any        `json:"old_value"`
	NewValue any        `json:"new_value"`
	Change   ChangeType `json:"change"`
}

// Comparison is the aggregate result of comparing two versions. Differences
// preserve descriptor order and contain no unchanged entries.
type Comparison struct {
	Base        *models.BrandVoiceVersion `json:"base"`
	Compared    *models.BrandVoiceVersion `json:"compared"`
	Differences []FieldDiff               `json:"differences"`
}

// Compare resolves each descriptor path on both snapshots and classifies the
// value pair. Old values always come from base and new values from compared,
// regardless of which version is chronologically older; callers decide the
// direction. Deterministic for identical inputs.
//
// Classification precedence per field:
//  1. both values absent            -> unchanged (excluded)
//  2. base value absent             -> added
//  3. compared value absent         -> removed
//  4. values equal                  -> unchanged (excluded)
//  5. otherwise                     -> modified
func Compare(base, compared *models.BrandVoiceVersion, fields []FieldDescriptor) Comparison {
	cmp := Comparison{
		Base:        base,
		Compared:    compared,
		Differences: []FieldDiff{},
	}

	baseMap := snapshotMap(base)
	comparedMap := snapshotMap(compared)

	for _, fd := range fields {
		oldVal := resolve(baseMap, fd.Path)
		newVal := resolve(comparedMap, fd.Path)

		var change ChangeType
		switch {
		case oldVal == nil && newVal == nil:
			continue
		case oldVal == nil:
			change = ChangeAdded
		case newVal == nil:
			change = ChangeRemoved
		case equalValues(oldVal, newVal):
			continue
		default:
			change = ChangeModified
		}

		cmp.Differences = append(cmp.Differences, FieldDiff{
			Field:    fd.Path,
			Label:    fd.Label,
			OldValue: oldVal,
			NewValue: newVal,
			Change:   change,
		})
	}

	return cmp
}

// FormatValue renders a resolved field value for display. Total: unknown
// paths and odd value shapes fall through to the generic branch.
func FormatValue(value any, fieldPath string) string {
	if value == nil {
		return "—"
	}
	if fieldPath == "status" {
		if s, ok := value.(string); ok {
			return capitalize(s)
		}
	}
	switch value.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprintf("%v", value)
	}
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}

var changeColors = map[ChangeType]string{
	ChangeAdded:     "green",
	ChangeRemoved:   "red",
	ChangeModified:  "amber",
	ChangeUnchanged: "gray",
}

// Color maps a change classification to its display-color token. Unknown
// classifications get the unchanged token.
func Color(change ChangeType) string {
	if c, ok := changeColors[change]; ok {
		return c
	}
	return changeColors[ChangeUnchanged]
}

// snapshotMap flattens a version into a path-addressable tree. Empty string
// fields become absent entries so that added/removed classification survives
// snapshots that never carried a value for a field.
func snapshotMap(v *models.BrandVoiceVersion) map[string]any {
	if v == nil {
		return map[string]any{}
	}
	m := map[string]any{
		"version_number": v.VersionNumber,
	}
	putString(m, "name", v.Name)
	putString(m, "description", v.Description)
	putString(m, "dos", v.Dos)
	putString(m, "donts", v.Donts)
	putString(m, "status", v.Status)

	meta := map[string]any{}
	putString(meta, "personality", v.VoiceMetadata.Personality)
	putString(meta, "tonality", v.VoiceMetadata.Tonality)
	m["voice_metadata"] = meta

	return m
}

func putString(m map[string]any, key, val string) {
	if val != "" {
		m[key] = val
	}
}

// resolve walks a dotted path through nested maps. Missing keys and
// non-map intermediates yield nil, never an error.
func resolve(m map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var cur any = m
	for _, p := range parts {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = node[p]
		if !ok {
			return nil
		}
	}
	return cur
}

// equalValues compares scalars with == and everything else by canonical JSON
// encoding. One explicit deep-equality rule for all field shapes.
func equalValues(a, b any) bool {
	switch a.(type) {
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return a == b
	}
	aj, aerr := json.Marshal(a)
	bj, berr := json.Marshal(b)
	if aerr != nil || berr != nil {
		return false
	}
	return string(aj) == string(bj)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
