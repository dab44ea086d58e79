package convo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votebot/entity"
)

func TestResolvePlainStep(t *testing.T) {
	c := NewChain("test", "a")
	c.Add(&Step{Name: "a", Msg: "hello"})

	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	step, name, err := c.Resolve(Transition{Next: "a"}, nil, user)
	require.NoError(t, err)
	assert.Equal(t, StepID("a"), name)
	assert.Equal(t, "hello", step.Msg)
}

func TestResolveHookAcceptsWithEmptyOverride(t *testing.T) {
	c := NewChain("test", "a")
	c.Add(&Step{
		Name: "a",
		Msg:  "hello",
		PreTransition: func(Transition, *entity.Conversation, *entity.User) StepID {
			return ""
		},
	})

	_, name, err := c.Resolve(Transition{Next: "a"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, StepID("a"), name)
}

func TestResolveFollowsRedirects(t *testing.T) {
	c := NewChain("test", "a")
	c.Add(&Step{
		Name: "a",
		PreTransition: func(Transition, *entity.Conversation, *entity.User) StepID {
			return "b"
		},
	})
	c.Add(&Step{
		Name: "b",
		PreTransition: func(Transition, *entity.Conversation, *entity.User) StepID {
			return "c"
		},
	})
	c.Add(&Step{Name: "c", Msg: "landed"})

	step, name, err := c.Resolve(Transition{Next: "a"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, StepID("c"), name)
	assert.Equal(t, "landed", step.Msg)
}

func TestResolveUnknownStep(t *testing.T) {
	c := NewChain("test", "a")
	c.Add(&Step{Name: "a"})

	_, _, err := c.Resolve(Transition{Next: "ghost"}, nil, nil)
	requireConfigError(t, err)
}

func TestResolveHookCycle(t *testing.T) {
	c := NewChain("test", "a")
	c.Add(&Step{
		Name: "a",
		PreTransition: func(Transition, *entity.Conversation, *entity.User) StepID {
			return "b"
		},
	})
	c.Add(&Step{
		Name: "b",
		PreTransition: func(Transition, *entity.Conversation, *entity.User) StepID {
			return "a"
		},
	})

	_, _, err := c.Resolve(Transition{Next: "a"}, nil, nil)
	requireConfigError(t, err)
}
