package vote

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"votebot/bot/convo"
	"votebot/entity"
)

type fakeZips struct{}

func (fakeZips) FindZip(_ context.Context, code string) (*entity.Zip, error) {
	if code == "94110" {
		return &entity.Zip{
			Code:   "94110",
			Places: []entity.Place{{City: "San Francisco", State: "CA"}},
		}, nil
	}
	return nil, entity.ErrZipNotFound
}

func newTestChain(t *testing.T) *convo.Chain {
	t.Helper()
	c := NewChain("https://hellovote.example.org", fakeZips{})
	require.NoError(t, c.Validate())
	return c
}

func TestChainRegisters(t *testing.T) {
	registry := convo.NewRegistry()
	require.NoError(t, registry.Register(newTestChain(t)))

	_, ok := registry.Chain(ChainName)
	assert.True(t, ok)
}

func resolveFrom(t *testing.T, c *convo.Chain, user *entity.User, from convo.StepID) convo.StepID {
	t.Helper()
	conversation := entity.NewConversation("bot", entity.ConversationBot,
		entity.ConversationState{Type: string(ChainName), Step: string(from)}, []string{user.UUID})
	_, name, err := c.Resolve(convo.Transition{Next: from}, conversation, user)
	require.NoError(t, err)
	return name
}

func TestSchedulerWalksCalifornia(t *testing.T) {
	c := newTestChain(t)
	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	user.SetSetting("state", "CA")

	// ca: us_citizen, state_resident, will_be_18, ssn_last4, state_id
	want := []convo.StepID{
		StepUsCitizen, StepStateResident, StepWillBe18, StepSSNLast4, StepStateID,
	}
	for _, step := range want {
		got := resolveFrom(t, c, user, StepPerState)
		require.Equal(t, step, got)
		user.SetSetting(string(step), "answered")
	}

	// everything answered; the generic tail resumes
	assert.Equal(t, StepParty, resolveFrom(t, c, user, StepPerState))
}

func TestSchedulerUnsupportedStateGoesToParty(t *testing.T) {
	c := newTestChain(t)
	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	user.SetSetting("state", "TX")

	assert.Equal(t, StepParty, resolveFrom(t, c, user, StepPerState))
}

func TestZipStepFillsCityAndState(t *testing.T) {
	c := newTestChain(t)
	user := entity.NewUser("15550001111", entity.UserTypeSMS)

	step, ok := c.Step(StepZip)
	require.True(t, ok)

	tr, err := step.Process(context.Background(), "94110")
	require.NoError(t, err)

	for _, a := range tr.Assignments {
		convo.ApplyToUser(user, a.Path, a.Value)
	}
	assert.Equal(t, "94110", user.Settings["zip"])
	assert.Equal(t, "San Francisco", user.Settings["city"])
	assert.Equal(t, "CA", user.Settings["state"])
}

func TestCityAndStateSkippedWhenZipResolvedThem(t *testing.T) {
	c := newTestChain(t)
	user := entity.NewUser("15550001111", entity.UserTypeSMS)
	user.SetSetting("city", "San Francisco")

	// city known, state not: land on the state question
	assert.Equal(t, StepState, resolveFrom(t, c, user, StepCity))

	// both known: straight to date of birth
	user.SetSetting("state", "CA")
	assert.Equal(t, StepDateOfBirth, resolveFrom(t, c, user, StepCity))
}

func TestReceiptSteps(t *testing.T) {
	c := newTestChain(t)

	for _, name := range []convo.StepID{StepProcessed, StepIncomplete} {
		step, ok := c.Step(name)
		require.True(t, ok, string(name))
		assert.True(t, step.Final, string(name))
	}

	submit, ok := c.Step(StepSubmit)
	require.True(t, ok)
	assert.False(t, submit.Final)
	assert.Equal(t, StepDone, submit.Next)
}
