package format

import "fmt"

// Code tables from SR-4731. Lookups are best-effort enrichment: an
// unrecognized code yields an "unknown" description, never an error.

var fiberTypes = map[uint16]string{
	651: "ITU-T G.651 (multi-mode fiber)",
	652: "ITU-T G.652 (standard single-mode fiber)",
	653: "ITU-T G.653 (dispersion-shifted fiber)",
	654: "ITU-T G.654 (1550nm loss-minimzed fiber)",
	655: "ITU-T G.655 (nonzero dispersion-shifted fiber)",
}

var buildConditions = map[string]string{
	"BC": "as-built",
	"CC": "as-current",
	"RC": "as-repaired",
	"OT": "other",
}

var traceTypes = map[string]string{
	"ST": "standard trace",
	"RT": "reverse trace",
	"DT": "difference trace",
	"RF": "reference",
}

var eventCategories = map[string]string{
	"0": "non-reflective",
	"1": "reflective",
	"2": "saturated-reflective",
}

var eventNotes = map[string]string{
	"A": "added-by-user",
	"M": "moved-by-user",
	"E": "end-of-fiber",
	"F": "found-by-software",
	"O": "out-of-range",
	"D": "modified-end-of-fiber",
}

var lossMeasurementTechniques = map[string]string{
	"LS": "least-square",
	"2P": "two-point",
}

func lookup(table map[string]string, code string) string {
	if desc, ok := table[code]; ok {
		return desc
	}

	return fmt.Sprintf("unknown (%s)", code)
}

// FiberTypeDescription describes a numeric fiber-type code
// (652 -> "ITU-T G.652 (standard single-mode fiber)").
func FiberTypeDescription(code uint16) string {
	if desc, ok := fiberTypes[code]; ok {
		return desc
	}

	return fmt.Sprintf("unknown (%d)", code)
}

// BuildConditionDescription describes a two-character build-condition code.
func BuildConditionDescription(code string) string {
	return lookup(buildConditions, code)
}

// TraceTypeDescription describes a two-character trace-type code.
func TraceTypeDescription(code string) string {
	return lookup(traceTypes, code)
}

// EventCategoryDescription describes the leading digit of an event-type code.
func EventCategoryDescription(code string) string {
	return lookup(eventCategories, code)
}

// EventNoteDescription describes the detection-note letter of an event-type
// code.
func EventNoteDescription(code string) string {
	return lookup(eventNotes, code)
}

// LossMeasurementDescription describes the trailing two-character loss
// measurement technique of an event-type code.
func LossMeasurementDescription(code string) string {
	return lookup(lossMeasurementTechniques, code)
}
