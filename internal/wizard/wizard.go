// Package wizard drives multi-step form flows: a step graph with per-step
// validation gating forward progress, free backward navigation, and one
// accumulated field set shared by every step.
package wizard

import (
	"context"
	"fmt"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
)

// Step is one screen of a wizard.
type Step struct {
	ID string
	// Validate gates forward progress out of this step. Nil means the step
	// always allows advancing.
	Validate func(fields domain.Payload) bool
	// Next picks the successor step given the accumulated fields, allowing
	// flows to skip steps based on early answers. Nil means linear +1.
	Next func(fields domain.Payload) string
}

// Submitter receives the accumulated fields when the terminal step submits.
type Submitter interface {
	Submit(ctx context.Context, formType domain.FormType, fields domain.Payload) error
}

// Controller is the state machine for one in-progress form. A controller
// serves a single logical session; operations are never interleaved.
type Controller struct {
	formType domain.FormType
	steps    []Step
	index    map[string]int
	current  int
	fields   domain.Payload
	// history records the path taken forward so Back retraces skipped steps
	// instead of landing on a screen the branch never showed.
	history []int
}

// New builds a controller positioned at the first step with empty fields.
func New(formType domain.FormType, steps []Step) (*Controller, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("wizard needs at least one step: %w", domain.ErrBadRequest)
	}
	index := make(map[string]int, len(steps))
	for i, s := range steps {
		if _, dup := index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate step id %q: %w", s.ID, domain.ErrBadRequest)
		}
		index[s.ID] = i
	}
	return &Controller{
		formType: formType,
		steps:    steps,
		index:    index,
		fields:   domain.Payload{},
	}, nil
}

// CurrentStep returns the 1-based position of the current step.
func (c *Controller) CurrentStep() int { return c.current + 1 }

// CurrentStepID returns the id of the current step.
func (c *Controller) CurrentStepID() string { return c.steps[c.current].ID }

// TotalSteps returns the fixed number of steps in the flow.
func (c *Controller) TotalSteps() int { return len(c.steps) }

// Fields returns the accumulated field set. The map is live; callers must
// not mutate it outside UpdateField.
func (c *Controller) Fields() domain.Payload { return c.fields }

// UpdateField merges one value into the accumulated fields. Always succeeds;
// validation is deferred to transition time.
func (c *Controller) UpdateField(name string, value interface{}) {
	c.fields[name] = value
}

// CanAdvance evaluates the current step's validator against the fields.
func (c *Controller) CanAdvance() bool {
	if v := c.steps[c.current].Validate; v != nil {
		return v(c.fields)
	}
	return true
}

// Next advances to the current step's successor when validation passes.
// Safe to call regardless: a blocked or terminal-step call is a no-op.
func (c *Controller) Next() {
	if !c.CanAdvance() || c.atTerminal() {
		return
	}
	target := c.current + 1
	if pick := c.steps[c.current].Next; pick != nil {
		id := pick(c.fields)
		i, ok := c.index[id]
		if !ok || i <= c.current {
			return
		}
		target = i
	}
	c.history = append(c.history, c.current)
	c.current = target
}

// Back returns to the previously visited step without validation and without
// clearing any entered values. No-op at the first step.
func (c *Controller) Back() {
	if len(c.history) == 0 {
		return
	}
	c.current = c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
}

// Submit hands the accumulated fields to the submitter. Only callable from
// the terminal step with its validation passing. Fields are retained on
// failure so the user can retry without re-entering anything.
func (c *Controller) Submit(ctx context.Context, s Submitter) error {
	if !c.atTerminal() {
		return fmt.Errorf("submit before final step: %w", domain.ErrBadRequest)
	}
	if !c.CanAdvance() {
		return fmt.Errorf("final step incomplete: %w", domain.ErrBadRequest)
	}
	return s.Submit(ctx, c.formType, c.fields)
}

func (c *Controller) atTerminal() bool { return c.current == len(c.steps)-1 }
