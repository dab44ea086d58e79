package convo

import (
	"votebot/entity"
)

// maxResolveDepth bounds pre-transition recursion. A well-authored chain
// resolves in a handful of hops; hitting the bound means a hook cycle.
const maxResolveDepth = 32

// Resolve maps a requested next-step name to the concrete step that will
// actually be shown, invoking pre-transition hooks (and through them the
// jurisdiction scheduler) until a step with no further redirect is found.
// Unknown names and hook cycles are configuration errors, never user-facing.
func (c *Chain) Resolve(t Transition, conversation *entity.Conversation, user *entity.User) (*Step, StepID, error) {
	return c.resolve(t, conversation, user, 0)
}

func (c *Chain) resolve(t Transition, conversation *entity.Conversation, user *entity.User, depth int) (*Step, StepID, error) {
	if depth >= maxResolveDepth {
		return nil, "", configErrorf("chain %s: pre-transition cycle resolving step %s", c.Name, t.Next)
	}

	step, ok := c.Step(t.Next)
	if !ok {
		return nil, "", configErrorf("chain %s: could not load step %s", c.Name, t.Next)
	}

	if step.PreTransition == nil {
		return step, t.Next, nil
	}
	override := step.PreTransition(t, conversation, user)
	if override == "" {
		return step, t.Next, nil
	}

	next := t
	next.Next = override
	return c.resolve(next, conversation, user, depth+1)
}
