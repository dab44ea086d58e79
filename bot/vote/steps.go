package vote

import "votebot/bot/convo"

// Per-state question steps. All of them transition back into per_state so the
// scheduler can resume its scan.
const (
	StepUsCitizen        convo.StepID = "us_citizen"
	StepStateResident    convo.StepID = "state_resident"
	StepWillBe18         convo.StepID = "will_be_18"
	StepEthnicity        convo.StepID = "ethnicity"
	StepDisenfranchised  convo.StepID = "disenfranchised"
	StepIncompetent      convo.StepID = "incompetent"
	StepStateID          convo.StepID = "state_id"
	StepStateIDIssueDate convo.StepID = "state_id_issue_date"
	StepSSN              convo.StepID = "ssn"
	StepSSNLast4         convo.StepID = "ssn_last4"
	StepStateIDOrSSN4    convo.StepID = "state_id_or_ssn_last4"
	StepGender           convo.StepID = "gender"
	StepCounty           convo.StepID = "county"
	StepConsentSignature convo.StepID = "consent_use_signature"
)

func addPerStateSteps(c *convo.Chain) {
	c.Add(&convo.Step{
		Name:     StepUsCitizen,
		Msg:      "Are you a US citizen?",
		Store:    "user.settings.us_citizen",
		Validate: convo.ValidateBooleanYes,
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepStateResident,
		Msg:      "Are you a current legal resident of {{settings.state}}?",
		Store:    "user.settings.state_resident",
		Validate: convo.ValidateBooleanYes,
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepWillBe18,
		Msg:      "Are you 18 or older, or will you be by the date of the election?",
		Store:    "user.settings.will_be_18",
		Validate: convo.ValidateBooleanYes,
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:  StepEthnicity,
		Msg:   "What is your ethnicity or race? (asian-pacific/black/hispanic/native-american/white/multi-racial/other)",
		Store: "user.settings.ethnicity",
		// not validated here; the forms service maps it to each state's format
		Next: StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepDisenfranchised,
		Msg:      "Are you currently disenfranchised from voting (for instance due to a felony conviction)?",
		Store:    "user.settings.disenfranchised",
		Validate: convo.ValidateBooleanNo,
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepIncompetent,
		Msg:      "Have you been found legally incompetent in your state?",
		Store:    "user.settings.incompetent",
		Validate: convo.ValidateBooleanNo,
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepStateID,
		Msg:      "What's your {{settings.state}} driver's license (or state ID) number?",
		ErrorMsg: "Please enter your state ID number",
		Store:    "user.settings.state_id",
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepStateIDIssueDate,
		Msg:      "What date was your state id/driver's license issued? (mm/dd/yyyy)",
		Store:    "user.settings.state_id_issue_date",
		Validate: convo.ValidateDate,
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepSSN,
		Msg:      "What's your SSN?",
		Store:    "user.settings.ssn",
		Validate: convo.ValidateSSN,
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepSSNLast4,
		Msg:      "What are the last 4 digits of your SSN?",
		ErrorMsg: "Please enter the last 4 digits of your SSN",
		Store:    "user.settings.ssn_last4",
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepStateIDOrSSN4,
		Msg:      "What's your {{settings.state}} driver's license (or state ID) number? If you don't have one, enter the last 4 digits of your SSN.",
		ErrorMsg: "Please enter your state ID number or last 4 of your SSN",
		Store:    "user.settings.state_id_or_ssn_last4",
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepGender,
		Msg:      "What's your gender?",
		Store:    "user.settings.gender",
		Validate: convo.ValidateGender,
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepCounty,
		Msg:      "What county do you reside in?",
		ErrorMsg: "Please enter the name of the county you reside in",
		Store:    "user.settings.county",
		Next:     StepPerState,
	})
	c.Add(&convo.Step{
		Name:     StepConsentSignature,
		Msg:      "May we use your signature on file with the DMV to complete the form with your state?",
		ErrorMsg: "Please reply Yes to let us request your signature from the DMV. We do not store this information",
		Store:    "user.settings.consent_use_signature",
		Validate: convo.ValidateBooleanYes,
		Next:     StepPerState,
	})
}

// Steps the receipt webhook jumps to once the forms service reports back.
func addReceiptSteps(c *convo.Chain) {
	c.Add(&convo.Step{
		Name:  StepProcessed,
		Msg:   "{{first_name}}, your voter registration form was processed! Check your email for your confirmation.",
		Final: true,
	})
	c.Add(&convo.Step{
		Name:  StepIncomplete,
		Msg:   "We couldn't finish generating your registration form. Our team is looking into it and will text you shortly.",
		Final: true,
	})
	c.Add(&convo.Step{
		Name:     StepSubmit,
		Msg:      "Your state's online registration system didn't accept the submission. Reply OK and we'll prepare a paper form you can mail in instead.",
		ErrorMsg: "Please reply OK to continue",
		Store:    "user.settings.submit_retry",
		Next:     StepDone,
	})
}
