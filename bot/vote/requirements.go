package vote

// stateRequirements lists, per state, the extra fields that state's online
// registration system needs beyond the generic questions, in the order the
// scheduler will ask them. Every entry names a chain step that stores into
// user.settings under the same name; chain validation enforces that.
//
// States absent from the map have no online system we can file with (or one
// we cannot automate yet); their users go straight to the generic tail.
var stateRequirements = map[string][]string{
	"al": {"us_citizen", "will_be_18", "state_id"},
	"ak": {"us_citizen", "will_be_18", "ssn_last4", "state_id"},
	"ca": {"us_citizen", "state_resident", "will_be_18", "ssn_last4", "state_id"},
	"co": {"state_id"},
	"ct": {"us_citizen", "state_resident", "will_be_18", "state_id", "disenfranchised"},
	"de": {"us_citizen", "state_resident", "state_id", "disenfranchised"},
	"ga": {"us_citizen", "state_resident", "will_be_18", "disenfranchised", "incompetent", "state_id"},
	"hi": {"state_id", "ssn", "gender"},
	"il": {"us_citizen", "will_be_18", "state_id", "state_id_issue_date"},
	"in": {"us_citizen", "will_be_18", "state_resident", "disenfranchised", "state_id"},
	"ks": {"us_citizen", "will_be_18", "state_resident", "disenfranchised", "state_id"},
	"ky": {"us_citizen", "state_resident", "will_be_18", "disenfranchised", "incompetent", "ssn"},
	"la": {"us_citizen", "will_be_18", "disenfranchised", "incompetent", "state_id"},
	"ma": {"us_citizen", "state_resident", "will_be_18", "state_id"},
	"md": {"us_citizen", "ssn_last4", "state_id"},
	"mn": {"us_citizen", "will_be_18", "disenfranchised", "state_id_or_ssn_last4"},
	"ne": {"us_citizen", "will_be_18", "state_id"},
	"nm": {"us_citizen", "state_resident", "will_be_18", "disenfranchised", "state_id", "ssn"},
	"nv": {"us_citizen", "state_resident", "will_be_18", "state_id", "ssn_last4"},
	"or": {"us_citizen", "will_be_18", "state_id_or_ssn_last4"},
	"pa": {"us_citizen", "will_be_18", "county", "state_id_or_ssn_last4", "disenfranchised"},
	"sc": {"state_id", "ssn", "gender"},
	"va": {"ssn_last4", "county"},
	"wa": {"us_citizen", "will_be_18", "state_id", "state_id_issue_date"},
	"wv": {"us_citizen", "state_resident", "will_be_18", "disenfranchised", "incompetent", "state_id", "ssn_last4"},
	"vt": {"us_citizen", "state_resident", "will_be_18", "state_id"},
}
