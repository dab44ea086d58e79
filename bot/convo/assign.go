package convo

import (
	"strings"

	"votebot/entity"
)

// Assignment is one field write produced by a validated turn, addressed as a
// (record kind, dotted path, value) triple. Record kinds are resolved against
// the engine's registry of writable records; assignments naming an
// unregistered kind are dropped, not failed.
type Assignment struct {
	Record string
	Path   string
	Value  any
}

// NewAssignment splits a full dotted target like "user.settings.city" into
// its record kind and the path within that record.
func NewAssignment(target string, value any) Assignment {
	record, path, found := strings.Cut(target, ".")
	if !found {
		return Assignment{Record: target, Value: value}
	}
	return Assignment{Record: record, Path: path, Value: value}
}

// Transition is the validated outcome of one turn: the requested next step
// plus the field writes to apply before moving there.
type Transition struct {
	Next        StepID
	Assignments []Assignment
}

// ApplyToUser writes a path/value pair into the user record. Unknown top-level
// paths land in settings so chains can invent fields freely.
func ApplyToUser(user *entity.User, path string, value any) {
	switch path {
	case "first_name":
		if s, ok := value.(string); ok {
			user.FirstName = s
		}
	case "last_name":
		if s, ok := value.(string); ok {
			user.LastName = s
		}
	case "complete":
		if b, ok := value.(bool); ok {
			user.Complete = b
		}
	default:
		if key, found := strings.CutPrefix(path, "settings."); found {
			user.SetSetting(key, value)
			return
		}
		user.SetSetting(path, value)
	}
}
