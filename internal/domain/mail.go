package domain

const MailTypeSignup = "signup"

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type SignupMailData struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
