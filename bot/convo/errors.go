package convo

import "fmt"

// DataError means the code is fine but the user's answer is not. Recoverable
// errors keep the conversation on the same step; terminal ones (End) carry a
// closing message and finish the dialogue.
type DataError struct {
	Msg string
	End bool
}

func (e *DataError) Error() string {
	return e.Msg
}

// Recoverable builds a DataError that re-prompts the current step.
func Recoverable(msg string) error {
	return &DataError{Msg: msg}
}

// Terminal builds a DataError that ends the conversation.
func Terminal(msg string) error {
	return &DataError{Msg: msg, End: true}
}

// ConfigError is a chain-authoring or wiring mistake: an unknown step or
// chain name, or a pre-transition cycle. Never shown to the user.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}

func configErrorf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
