// Package vote defines the voter-registration conversation chain. Each step
// is a question; processing an answer stores data on the user record and
// names the next step. The per_state step asks no question of its own; it
// routes through whatever extra questions the user's state requires.
package vote

import (
	"net/url"

	"votebot/bot/convo"
	"votebot/entity"
)

const ChainName convo.ChainID = "vote_1"

// Step names. Per-state question steps MUST store their value in
// settings.{{name}} where {{name}} is the step name. The scheduler scans
// settings by those names, and a mismatch loops the chain forever. This is
// enforced by chain validation at startup.
const (
	StepIntroDirect convo.StepID = "intro_direct"
	StepIntroRefer  convo.StepID = "intro_refer"
	StepLastName    convo.StepID = "last_name"
	StepZip         convo.StepID = "zip"
	StepAddress     convo.StepID = "address"
	StepCity        convo.StepID = "city"
	StepState       convo.StepID = "state"
	StepDateOfBirth convo.StepID = "date_of_birth"
	StepEmail       convo.StepID = "email"
	StepPerState    convo.StepID = "per_state"
	StepParty       convo.StepID = "party"
	StepMail        convo.StepID = "mail"
	StepDone        convo.StepID = "done"

	// out-of-band targets for the forms-service receipt webhook
	StepProcessed  convo.StepID = "processed"
	StepIncomplete convo.StepID = "incomplete"
	StepSubmit     convo.StepID = "submit"
)

// NewChain builds the vote_1 chain. shareURL is templated into the closing
// message; zips backs the zip-code validator.
func NewChain(shareURL string, zips convo.ZipLookup) *convo.Chain {
	c := convo.NewChain(ChainName, StepIntroDirect)

	c.Add(&convo.Step{
		Name:     StepIntroDirect,
		Msg:      "Hi! Let's get you registered to vote. What's your first name?",
		ErrorMsg: "Please enter your first name",
		Store:    "user.first_name",
		Next:     StepLastName,
	})
	c.Add(&convo.Step{
		Name:     StepIntroRefer,
		Msg:      "Hi! One of your friends has asked me to help you get registered to vote. What's your first name?",
		ErrorMsg: "Please enter your first name",
		Store:    "user.first_name",
		Next:     StepLastName,
	})
	c.Add(&convo.Step{
		Name:     StepLastName,
		Msg:      "Ok {{first_name}}, what's your last name?",
		ErrorMsg: "Please enter your last name",
		Store:    "user.last_name",
		Next:     StepZip,
	})
	c.Add(&convo.Step{
		Name:     StepZip,
		Msg:      "What's your zip code?",
		ErrorMsg: "Please enter your zip code",
		Store:    "user.settings.zip",
		Validate: convo.NewZipValidator(zips),
		Next:     StepAddress,
	})
	c.Add(&convo.Step{
		Name:     StepAddress,
		Msg:      "What's your street address? (including apartment #, if any)",
		ErrorMsg: "Please enter your street address",
		Store:    "user.settings.address",
		Next:     StepCity,
	})
	c.Add(&convo.Step{
		Name:     StepCity,
		Msg:      "What city do you live in?",
		ErrorMsg: "Please enter your city",
		Store:    "user.settings.city",
		Next:     StepState,
		// the zip lookup usually fills this in already
		PreTransition: skipIfAnswered("city", StepState),
	})
	c.Add(&convo.Step{
		Name:          StepState,
		Msg:           "What state do you live in? (eg CA)",
		ErrorMsg:      "Please enter your state",
		Store:         "user.settings.state",
		Next:          StepDateOfBirth,
		PreTransition: skipIfAnswered("state", StepDateOfBirth),
	})
	c.Add(&convo.Step{
		Name:     StepDateOfBirth,
		Msg:      "When were you born? (MM/DD/YYYY)",
		ErrorMsg: "Please enter your date of birth",
		Store:    "user.settings.date_of_birth",
		Validate: convo.ValidateDate,
		Next:     StepEmail,
	})
	c.Add(&convo.Step{
		Name:     StepEmail,
		Msg:      "What's your email address?",
		ErrorMsg: "Please enter your email address",
		Store:    "user.settings.email",
		Validate: convo.ValidateEmail,
		Next:     StepPerState,
	})

	// the router between the generic questions and the state-specific tail
	c.AddScheduler(StepPerState, "state", stateRequirements, StepParty)

	c.Add(&convo.Step{
		Name:     StepParty,
		Msg:      "What's your party preference? (democrat/republican/libertarian/green/other/none)",
		ErrorMsg: "Please let us know your party preference",
		Store:    "user.settings.political_party",
		Next:     StepMail,
	})
	c.Add(&convo.Step{
		Name:     StepMail,
		Msg:      "Would you like to vote by mail-in ballot?",
		Store:    "user.settings.mail_in",
		Validate: convo.ValidateBoolean,
		Next:     StepDone,
	})
	c.Add(&convo.Step{
		Name: StepDone,
		Msg: "Thanks! We'll begin processing your registration! Share this bot to get your friends registered too: " +
			"https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(shareURL),
		Final: true,
	})

	addPerStateSteps(c)
	addReceiptSteps(c)
	return c
}

// skipIfAnswered jumps past a question when the settings field is already
// present (e.g. filled by the zip lookup).
func skipIfAnswered(field string, next convo.StepID) convo.PreTransition {
	return func(t convo.Transition, _ *entity.Conversation, user *entity.User) convo.StepID {
		if _, ok := user.Setting(field); ok {
			return next
		}
		return ""
	}
}
