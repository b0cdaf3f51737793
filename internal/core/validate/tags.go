package validate

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tag names usable in `validate:"..."` struct tags once RegisterTags ran.
const (
	TagNetwork        = "ads_network"
	TagPhone          = "ads_phone"
	TagLink           = "ads_link"
	TagAvatarURL      = "avatar_url"
	TagPersonName     = "person_name"
	TagStrongPassword = "strong_password"
	TagFormEmail      = "form_email"
)

var tagRules = map[string]Matcher{
	TagNetwork:        NetworkPattern,
	TagPhone:          PhonePattern,
	TagLink:           LinkPattern,
	TagAvatarURL:      AvatarPattern,
	TagPersonName:     NamePattern,
	TagStrongPassword: PasswordRule,
	TagFormEmail:      EmailPattern,
}

// RegisterTags installs the form rules as validator tags and reports field
// names by their json key.
func RegisterTags(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	for tag, m := range tagRules {
		if err := v.RegisterValidation(tag, matcherRule(m)); err != nil {
			return err
		}
	}
	return nil
}

func matcherRule(m Matcher) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		// empty values are left to `required`
		return s == "" || m.MatchString(s)
	}
}

// TagMessage returns the form message for a failed custom tag, or "" when tag
// is not one of ours.
func TagMessage(tag, field string) string {
	var msg string
	switch tag {
	case TagNetwork:
		msg = MsgInvalidNetwork
	case TagPhone:
		msg = MsgInvalidPhone
	case TagLink:
		msg = MsgInvalidLink
	case TagAvatarURL:
		msg = MsgInvalidAvatar
	case TagPersonName:
		msg = MsgInvalidName
	case TagStrongPassword:
		msg = MsgInvalidPassword
	case TagFormEmail:
		msg = MsgInvalidEmail
	default:
		return ""
	}
	return fill(msg, field)
}
