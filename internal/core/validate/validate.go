// Package validate holds the field and form validators shared by the
// dashboard forms and the JSON API. Validators are pure: they return the
// message to show, or "" when the value is acceptable.
package validate

import (
	"regexp"
	"strings"
)

// Messages shown next to form fields. {field} is replaced by the field label.
const (
	MsgRequired        = "{field} is required"
	MsgInvalidEmail    = "Invalid email. Please enter a valid email address"
	MsgInvalidPassword = "Invalid password. Password must have at least 8 characters, including at least one digit, one special character, one lowercase letter, and one uppercase letter."
	MsgConfirmMismatch = "Password and Confirm Password do not match."
	MsgInvalidNetwork  = "Invalid {field}. {field} must contain 4 to 20 letters or digits."
	MsgInvalidPhone    = "Invalid {field}. Please use the format (XXX)-XXX-XXXX."
	MsgInvalidLink     = "Invalid {field}. Please enter a valid URL."
	MsgInvalidName     = "Invalid {field}. {field} must contain 4 to 20 letters, digits or spaces."
	MsgInvalidAvatar   = "Invalid {field}. Please enter an image URL (png, jpg, jpeg, gif, svg, webp)."
)

// Matcher is satisfied by *regexp.Regexp and by rule functions that RE2
// cannot express.
type Matcher interface {
	MatchString(s string) bool
}

// MatchFunc adapts a plain function to Matcher.
type MatchFunc func(string) bool

func (f MatchFunc) MatchString(s string) bool { return f(s) }

var (
	EmailPattern   = regexp.MustCompile(`^(([^<>()\[\].,;:\s@"]+(\.[^<>()\[\].,;:\s@"]+)*)|(".+"))@((\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})|(([a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}))$`)
	PhonePattern   = regexp.MustCompile(`^\(\d{3}\)-\d{3}-\d{4}$`)
	NetworkPattern = regexp.MustCompile(`^[0-9a-zA-Z]{4,20}$`)
	LinkPattern    = regexp.MustCompile(`^(https?://)?(www\.)?[a-zA-Z0-9-]+(\.[a-zA-Z]{2,})+(\.[a-zA-Z]{2,})?([/?].*)?$`)
	NamePattern    = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 ]{2,18}[a-zA-Z0-9]$`)
	AvatarPattern  = regexp.MustCompile(`^https?://\S+\.(?i:png|jpe?g|gif|svg|webp)(\?\S*)?$`)

	// KeywordSpace matches the whitespace stripped from search keywords.
	KeywordSpace = regexp.MustCompile(`\s`)

	nonNumeric = regexp.MustCompile(`[^0-9]`)
)

// PasswordRule requires at least 8 characters with a digit, one of
// !@#$%^&*, a lowercase and an uppercase letter. Only ASCII letters and
// digits count toward the classes.
var PasswordRule = MatchFunc(func(s string) bool {
	if len([]rune(s)) < 8 {
		return false
	}
	var digit, special, lower, upper bool
	for _, r := range s {
		switch {
		case '0' <= r && r <= '9':
			digit = true
		case strings.ContainsRune("!@#$%^&*", r):
			special = true
		case 'a' <= r && r <= 'z':
			lower = true
		case 'A' <= r && r <= 'Z':
			upper = true
		}
	}
	return digit && special && lower && upper
})

func fill(msg, field string) string {
	return strings.ReplaceAll(msg, "{field}", field)
}

// Required returns the required message for field when value is empty.
func Required(value, field string) string {
	if value == "" {
		return fill(MsgRequired, field)
	}
	return ""
}

// Field applies the shared policy: an empty value is reported as required,
// a value the matcher rejects gets msg, anything else passes.
func Field(value, field string, m Matcher, msg string) string {
	if value == "" {
		return fill(MsgRequired, field)
	}
	if !m.MatchString(value) {
		return fill(msg, field)
	}
	return ""
}

// Email validates a login or user email address.
func Email(v string) string { return Field(v, "Email", EmailPattern, MsgInvalidEmail) }

// Password validates v against PasswordRule.
func Password(v string) string { return Field(v, "Password", PasswordRule, MsgInvalidPassword) }

// Network validates an ad network name: 4 to 20 letters or digits.
func Network(v string) string { return Field(v, "Network", NetworkPattern, MsgInvalidNetwork) }

// Phone validates a mobile number in (XXX)-XXX-XXXX form.
func Phone(v string) string { return Field(v, "Mobile No", PhonePattern, MsgInvalidPhone) }

// Link validates an ad link URL.
func Link(v string) string { return Field(v, "Link", LinkPattern, MsgInvalidLink) }

// Name validates a person name.
func Name(v string) string { return Field(v, "Name", NamePattern, MsgInvalidName) }

// Subject validates a teacher subject with the same rule as Name.
func Subject(v string) string { return Field(v, "Subject", NamePattern, MsgInvalidName) }

// AvatarURL validates an http(s) image URL.
func AvatarURL(v string) string {
	return Field(v, "Avatar url", AvatarPattern, MsgInvalidAvatar)
}

// Status requires an ad status to be chosen.
func Status(v string) string { return Required(v, "Status Type") }

// Class requires a class to be chosen.
func Class(v string) string { return Required(v, "Class") }

// Gender requires a gender to be chosen.
func Gender(v string) string { return Required(v, "Gender") }

// ConfirmPassword reports a missing confirmation first, then a mismatch.
func ConfirmPassword(password, confirm string) string {
	if confirm == "" {
		return fill(MsgRequired, "Confirm password")
	}
	if password != confirm {
		return MsgConfirmMismatch
	}
	return ""
}

// NormalizeKeyword lowercases s and removes all whitespace.
func NormalizeKeyword(s string) string {
	return strings.ToLower(KeywordSpace.ReplaceAllString(strings.TrimSpace(s), ""))
}

// FormatPhoneNumber keeps the digits of s and, once there are at least ten,
// lays the first ten out as (XXX)-XXX-XXXX.
func FormatPhoneNumber(s string) string {
	digits := nonNumeric.ReplaceAllString(s, "")
	if len(digits) < 10 {
		return digits
	}
	return "(" + digits[0:3] + ")-" + digits[3:6] + "-" + digits[6:10]
}
