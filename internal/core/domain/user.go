package domain

// User is a record of the users collection backing the dashboard login.
// Password holds either a bcrypt hash or, for legacy fixtures, the raw value.
type User struct {
	ID       string `json:"id,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up form. ConfirmPassword never leaves the dashboard.
type Registration struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Session is the result of a successful login.
type Session struct {
	Token    string `json:"token"`
	Email    string `json:"email"`
	Redirect string `json:"redirect"`
}

// Messages shown after a successful auth action.
const (
	MsgLoginSuccess  = "Sign in successfully"
	MsgSignupSuccess = "Registration successful. You can now sign in."
)
