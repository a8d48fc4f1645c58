package task

import (
	"fmt"
	"strings"

	"atelier/internal/pkg/errs"
)

// Type classifies a production task. Rework is special: tasks of this type
// are created by failed inspections and do not count against the task gate
// when re-entering QC.
type Type int

const (
	// TypeUnknown represents an invalid or undefined type.
	TypeUnknown Type = iota

	// TypeCutting is fabric cutting.
	TypeCutting

	// TypeSewingCoat is coat/jacket assembly.
	TypeSewingCoat

	// TypeSewingTrouser is trouser assembly.
	TypeSewingTrouser

	// TypeFinishing is buttons, lining and final press.
	TypeFinishing

	// TypeRework is a correction task created by a failed QC inspection.
	TypeRework
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:       "unknown",
		TypeCutting:       "cutting",
		TypeSewingCoat:    "sewing_coat",
		TypeSewingTrouser: "sewing_trouser",
		TypeFinishing:     "finishing",
		TypeRework:        "rework",
	}
}

func getTypeTitles() map[Type]string {
	return map[Type]string{
		TypeCutting:       "Cutting",
		TypeSewingCoat:    "Sewing Coat",
		TypeSewingTrouser: "Sewing Trouser",
		TypeFinishing:     "Finishing",
		TypeRework:        "Rework",
	}
}

// Validate checks if the Type value is one of the defined task types.
func (t Type) Validate() error {
	if t == TypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("taskType",
			fmt.Errorf("%d is not a valid task type", t))
	}
	if _, ok := getTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("taskType",
			fmt.Errorf("%d is not a valid task type", t))
	}
	return nil
}

// String returns the snake_case name of the type.
func (t Type) String() string {
	if name, ok := getTypeStrings()[t]; ok {
		return name
	}
	return "unknown"
}

// Title returns the human-readable task title for the type.
func (t Type) Title() string {
	if title, ok := getTypeTitles()[t]; ok {
		return title
	}
	return "Task"
}

// TypeFromString parses a task type name.
func TypeFromString(name string) (Type, error) {
	for typ, s := range getTypeStrings() {
		if s == name && typ != TypeUnknown {
			return typ, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("taskType",
		fmt.Errorf("%q is not a valid task type", name))
}

// TypesForLineItem maps a sales-channel product name to the default task set
// for that garment. Unrecognized products map to no tasks; the ingestion flow
// seeds whatever the order's line items add up to.
func TypesForLineItem(productName string) []Type {
	name := strings.ToLower(productName)

	var types []Type
	if strings.Contains(name, "suit") || strings.Contains(name, "jacket") {
		types = append(types, TypeCutting, TypeSewingCoat, TypeFinishing)
	}
	if strings.Contains(name, "trouser") || strings.Contains(name, "pant") {
		types = append(types, TypeSewingTrouser)
	}
	return types
}
