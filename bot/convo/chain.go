package convo

import (
	"context"
	"strings"

	"votebot/entity"
)

// StepID is a unique identifier for a step within a chain.
type StepID string

// ChainID is a unique identifier for a conversation chain.
type ChainID string

// Validator checks and normalizes one answer. It returns the value to store
// plus any auxiliary assignments (e.g. a zip lookup filling city and state),
// or a classified *DataError.
type Validator func(ctx context.Context, body string) (value any, extra []Assignment, err error)

// PreTransition can override the requested next step before it is shown.
// Returning "" accepts the step as-is. Hooks run synchronously and must not
// perform I/O.
type PreTransition func(t Transition, conversation *entity.Conversation, user *entity.User) StepID

// Step is a single question in a chain: the prompt, how to process the
// answer, and where to go next.
type Step struct {
	Name          StepID
	Msg           string
	ErrorMsg      string
	Next          StepID
	Store         string // dotted target for the answer, e.g. "user.settings.zip"
	Validate      Validator
	PreTransition PreTransition
	Final         bool
}

// Process turns a raw message body into a Transition. Blank input is always
// a recoverable error, before any validator runs.
func (s *Step) Process(ctx context.Context, body string) (Transition, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Transition{}, Recoverable(s.ErrorMsg)
	}

	if s.Validate == nil {
		t := Transition{Next: s.Next}
		if s.Store != "" {
			t.Assignments = []Assignment{NewAssignment(s.Store, body)}
		}
		return t, nil
	}

	value, extra, err := s.Validate(ctx, body)
	if err != nil {
		return Transition{}, err
	}
	t := Transition{Next: s.Next, Assignments: extra}
	if s.Store != "" {
		t.Assignments = append(t.Assignments, NewAssignment(s.Store, value))
	}
	return t, nil
}

// Chain is a named, immutable set of steps with one designated start.
type Chain struct {
	Name  ChainID
	Start StepID

	steps map[StepID]*Step

	// scheduler metadata, recorded so Validate can enforce the
	// field-name-equals-step-name contract over the requirement lists
	requirements map[string][]string
	continuation StepID
}

func NewChain(name ChainID, start StepID) *Chain {
	return &Chain{
		Name:  name,
		Start: start,
		steps: make(map[StepID]*Step),
	}
}

// Add registers a step. Later Adds with the same name overwrite.
func (c *Chain) Add(step *Step) *Chain {
	c.steps[step.Name] = step
	return c
}

// Step looks up a step by name.
func (c *Chain) Step(id StepID) (*Step, bool) {
	s, ok := c.steps[id]
	return s, ok
}

// Validate checks the chain's authoring contracts once, at registration:
// the start step exists, every Next points at a real step, and every field a
// scheduler requirement list names has a step of the same name storing into
// settings.<name>. A requirement step that stores anywhere else would make
// the scheduler re-ask it forever.
func (c *Chain) Validate() error {
	if _, ok := c.steps[c.Start]; !ok {
		return configErrorf("chain %s: start step %s not found", c.Name, c.Start)
	}

	for name, step := range c.steps {
		if step.Next == "" {
			continue
		}
		if _, ok := c.steps[step.Next]; !ok {
			return configErrorf("chain %s: step %s points at missing step %s", c.Name, name, step.Next)
		}
	}

	if c.continuation != "" {
		if _, ok := c.steps[c.continuation]; !ok {
			return configErrorf("chain %s: scheduler continuation step %s not found", c.Name, c.continuation)
		}
	}
	for jurisdiction, fields := range c.requirements {
		for _, field := range fields {
			step, ok := c.steps[StepID(field)]
			if !ok {
				return configErrorf("chain %s: jurisdiction %s requires missing step %s", c.Name, jurisdiction, field)
			}
			want := "user.settings." + field
			if step.Store != want {
				return configErrorf("chain %s: step %s must store into %s, stores into %q",
					c.Name, field, want, step.Store)
			}
		}
	}
	return nil
}

// Registry holds the chains the engine can run.
type Registry struct {
	chains map[ChainID]*Chain
}

func NewRegistry() *Registry {
	return &Registry{chains: make(map[ChainID]*Chain)}
}

// Register validates and adds a chain.
func (r *Registry) Register(c *Chain) error {
	if err := c.Validate(); err != nil {
		return err
	}
	r.chains[c.Name] = c
	return nil
}

// Chain looks up a registered chain by name.
func (r *Registry) Chain(name ChainID) (*Chain, bool) {
	c, ok := r.chains[name]
	return c, ok
}
