package convo

import "strings"

var yesWords = map[string]bool{
	"yes": true, "y": true, "yes.": true, "yep": true, "yup": true,
	"yeah": true, "ya": true, "sure": true, "ok": true, "okay": true,
	"true": true, "1": true, "si": true, "yea": true,
}

var noWords = map[string]bool{
	"no": true, "n": true, "no.": true, "nope": true, "nah": true,
	"naw": true, "false": true, "0": true, "never": true,
}

var cancelWords = map[string]bool{
	"cancel": true, "stop": true, "quit": true, "unsubscribe": true,
	"end": true, "leave me alone": true,
}

// genderWords canonicalizes free-text gender answers to the two values the
// state registration forms accept.
var genderWords = map[string]string{
	"m": "male", "male": "male", "man": "male", "boy": "male",
	"guy": "male", "dude": "male",
	"f": "female", "female": "female", "woman": "female", "girl": "female",
	"lady": "female", "gal": "female",
}

func normalizeWord(body string) string {
	return strings.ToLower(strings.TrimSpace(body))
}

// IsYes reports whether the answer parses as an affirmative.
func IsYes(body string) bool {
	return yesWords[normalizeWord(body)]
}

// IsNo reports whether the answer parses as a negative.
func IsNo(body string) bool {
	return noWords[normalizeWord(body)]
}

// IsCancel reports whether the message is a cancellation phrase. Cancellation
// bypasses the current step's validator entirely.
func IsCancel(body string) bool {
	return cancelWords[normalizeWord(body)]
}

// Gender canonicalizes a gender answer, returning "" when unrecognized.
func Gender(body string) string {
	return genderWords[normalizeWord(body)]
}
