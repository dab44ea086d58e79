package convo

import (
	"regexp"

	"votebot/entity"
)

var placeholderRe = regexp.MustCompile(`{{(.*?)}}`)

// RenderTemplate fills {{path}} placeholders in a step message from the user
// record. Supported paths are the name fields and settings.* keys; anything
// unknown renders as an empty string.
func RenderTemplate(msg string, user *entity.User) string {
	return placeholderRe.ReplaceAllStringFunc(msg, func(match string) string {
		key := placeholderRe.FindStringSubmatch(match)[1]
		return lookupField(key, user)
	})
}

func lookupField(key string, user *entity.User) string {
	if user == nil {
		return ""
	}
	switch key {
	case "first_name":
		return user.FirstName
	case "last_name":
		return user.LastName
	case "username":
		return user.Username
	}
	const prefix = "settings."
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return user.SettingString(key[len(prefix):])
	}
	return ""
}
