package contacts

import (
	"fmt"
	"strings"
)

// Field names one of the three derived name parts. The value doubles as the
// storage column name.
type Field string

// Derived fields.
const (
	FieldGiven      Field = "name_given"
	FieldFamily     Field = "name_family"
	FieldSalutation Field = "name_salutation"
)

var fieldLabels = map[Field]string{
	FieldGiven:      "Given Name",
	FieldFamily:     "Family Name",
	FieldSalutation: "Salutation",
}

var manualColumns = map[Field]string{
	FieldGiven:      "is_given_name_manual",
	FieldFamily:     "is_family_name_manual",
	FieldSalutation: "is_salutation_manual",
}

// Fields returns the derived fields in derivation order: salutation last,
// since it depends on the other two.
func Fields() []Field {
	return []Field{FieldGiven, FieldFamily, FieldSalutation}
}

// String returns the string representation of a field.
func (f Field) String() string {
	return string(f)
}

// Label returns the human-readable label for the field.
func (f Field) Label() string {
	return fieldLabels[f]
}

// ManualColumn returns the name of the field's manual flag.
func (f Field) ManualColumn() string {
	return manualColumns[f]
}

// ParseField accepts a field name ("name_given") or a short alias ("given").
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name_given", "given", "given_name":
		return FieldGiven, nil
	case "name_family", "family", "family_name":
		return FieldFamily, nil
	case "name_salutation", "salutation":
		return FieldSalutation, nil
	}
	return "", fmt.Errorf("unknown field %q", s)
}
