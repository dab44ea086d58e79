package convo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votebot/entity"
)

// schedulerChain is a minimal chain with a jurisdiction router: three extra
// questions for "zz", none for anyone else, continuing at "party".
func schedulerChain(t *testing.T) *Chain {
	t.Helper()
	c := NewChain("test", "router")
	for _, name := range []string{"first", "second", "third"} {
		c.Add(&Step{
			Name:  StepID(name),
			Msg:   "q: " + name,
			Store: "user.settings." + name,
			Next:  "router",
		})
	}
	c.Add(&Step{Name: "party", Msg: "party?"})
	c.AddScheduler("router", "state", map[string][]string{
		"zz": {"first", "second", "third"},
	}, "party")
	require.NoError(t, c.Validate())
	return c
}

func resolveRouter(t *testing.T, c *Chain, user *entity.User) StepID {
	t.Helper()
	conversation := entity.NewConversation("bot", entity.ConversationBot,
		entity.ConversationState{Type: "test", Step: "router"}, nil)
	_, name, err := c.Resolve(Transition{Next: "router"}, conversation, user)
	require.NoError(t, err)
	return name
}

func TestSchedulerAsksFirstUnanswered(t *testing.T) {
	c := schedulerChain(t)
	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	user.SetSetting("state", "zz")

	assert.Equal(t, StepID("first"), resolveRouter(t, c, user))

	user.SetSetting("first", "answered")
	assert.Equal(t, StepID("second"), resolveRouter(t, c, user))

	// asking again without new answers lands on the same step
	assert.Equal(t, StepID("second"), resolveRouter(t, c, user))
}

func TestSchedulerPresenceIsAnswered(t *testing.T) {
	c := schedulerChain(t)
	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	user.SetSetting("state", "zz")

	// empty string and false are answers; only absence re-asks
	user.SetSetting("first", "")
	user.SetSetting("second", false)

	assert.Equal(t, StepID("third"), resolveRouter(t, c, user))
}

func TestSchedulerAllAnsweredContinues(t *testing.T) {
	c := schedulerChain(t)
	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	user.SetSetting("state", "zz")
	user.SetSetting("first", "a")
	user.SetSetting("second", "b")
	user.SetSetting("third", "c")

	assert.Equal(t, StepID("party"), resolveRouter(t, c, user))
}

func TestSchedulerUnknownJurisdictionContinues(t *testing.T) {
	c := schedulerChain(t)
	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	user.SetSetting("state", "xx")

	assert.Equal(t, StepID("party"), resolveRouter(t, c, user))
}

func TestSchedulerNormalizesJurisdiction(t *testing.T) {
	c := schedulerChain(t)
	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	user.SetSetting("state", "  ZZ ")

	assert.Equal(t, StepID("first"), resolveRouter(t, c, user))
}
