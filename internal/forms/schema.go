// Package forms is the single source of truth for per-form-type field
// requirements. The wizard's step validators and the submission pipeline's
// server-side checks are both built from these schemas so the two can never
// silently diverge.
package forms

import (
	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
)

// StepSpec describes one wizard step in terms of the fields it requires.
type StepSpec struct {
	ID     string
	Fields []string
	// Extra is an additional step-local predicate beyond field presence
	// (e.g. the signature length rule on review steps).
	Extra func(p domain.Payload) bool
	// Next overrides the linear successor for branching flows.
	Next func(p domain.Payload) string
}

// Schema is the declarative requirement set for one form type.
type Schema struct {
	FormType domain.FormType
	Required []string
	// Conditional returns required fields that depend on earlier answers.
	Conditional func(p domain.Payload) []string
	// Flags are boolean fields that must be affirmatively set.
	Flags []string
	// Extra is a whole-form predicate returning pseudo-field names to report
	// as missing when a present value is unusable (e.g. a too-short signature).
	Extra func(p domain.Payload) []string
	Steps []StepSpec
}

// MissingFields returns the schema fields absent or unusable in p, in
// declaration order. Empty means the payload passes validation.
func (s Schema) MissingFields(p domain.Payload) []string {
	var missing []string
	for _, f := range s.Required {
		if !p.Has(f) {
			missing = append(missing, f)
		}
	}
	if s.Conditional != nil {
		for _, f := range s.Conditional(p) {
			if !p.Has(f) {
				missing = append(missing, f)
			}
		}
	}
	for _, f := range s.Flags {
		if !p.Bool(f) {
			missing = append(missing, f)
		}
	}
	if s.Extra != nil {
		missing = append(missing, s.Extra(p)...)
	}
	return missing
}

// ByType looks up the schema for a form type.
func ByType(ft domain.FormType) (Schema, bool) {
	s, ok := schemas[ft]
	return s, ok
}

var schemas = map[domain.FormType]Schema{
	domain.FormIntake:                Intake,
	domain.FormYouthServices:         YouthServices,
	domain.FormWeekendPass:           WeekendPass,
	domain.FormInsuranceVerification: InsuranceVerification,
	domain.FormProgressReport:        ProgressReport,
	domain.FormHandbookAck:           HandbookAck,
}
