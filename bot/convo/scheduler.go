package convo

import (
	"strings"

	"votebot/entity"
)

// AddScheduler installs a routing step that walks the jurisdiction's ordered
// requirement list and redirects to the first field the user has not answered
// yet. A settings value counts as answered as soon as the key is present:
// empty strings and false are answers, only absence is not. When every field
// is present, or the jurisdiction has no list, the step routes to the fixed
// continuation step.
//
// The step renders no message of its own; every per-field step it can route
// to must transition back into it so the scan resumes. That loop is what lets
// one chain carry a variable-length jurisdiction-specific tail.
func (c *Chain) AddScheduler(name StepID, jurisdictionField string, requirements map[string][]string, continuation StepID) *Chain {
	c.requirements = requirements
	c.continuation = continuation

	c.Add(&Step{
		Name: name,
		PreTransition: func(t Transition, conversation *entity.Conversation, user *entity.User) StepID {
			jurisdiction := strings.ToLower(strings.TrimSpace(user.SettingString(jurisdictionField)))
			fields, ok := requirements[jurisdiction]
			if !ok {
				return continuation
			}
			for _, field := range fields {
				if _, answered := user.Setting(field); !answered {
					return StepID(field)
				}
			}
			return continuation
		},
	})
	return c
}
