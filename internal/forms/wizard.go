package forms

import (
	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/wizard"
)

// Wizard builds a wizard controller whose step validators come straight from
// this schema's step specs.
func (s Schema) Wizard() (*wizard.Controller, error) {
	steps := make([]wizard.Step, 0, len(s.Steps))
	for _, spec := range s.Steps {
		spec := spec
		steps = append(steps, wizard.Step{
			ID: spec.ID,
			Validate: func(fields domain.Payload) bool {
				for _, f := range spec.Fields {
					if !fields.Has(f) {
						return false
					}
				}
				if spec.Extra != nil {
					return spec.Extra(fields)
				}
				return true
			},
			Next: spec.Next,
		})
	}
	return wizard.New(s.FormType, steps)
}
