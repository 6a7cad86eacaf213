package account

import (
	"net/mail"
	"regexp"
	"strings"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 15
	passwordSpecials  = "@$!%*#?&"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)

// SignupRequest is the payload of an account signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsOwner  bool   `json:"isOwner"`
}

// ValidateSignup returns a message per invalid field, or nil when req is valid.
func ValidateSignup(req *SignupRequest) map[string]string {
	fields := make(map[string]string)

	switch {
	case isBlank(req.Email):
		fields["email"] = "email must not be blank"
	case !isEmail(req.Email):
		fields["email"] = "email must be a valid address"
	}

	switch {
	case isBlank(req.Password):
		fields["password"] = "password must not be blank"
	case !isPassword(req.Password):
		fields["password"] = "password must be 8-15 characters and contain a letter, a digit and one of @$!%*#?&"
	}

	if isBlank(req.Address) {
		fields["address"] = "address must not be blank"
	}

	switch {
	case isBlank(req.Phone):
		fields["phone"] = "phone must not be blank"
	case !phonePattern.MatchString(req.Phone):
		fields["phone"] = "phone must be 10 or 11 digits"
	}

	if len(fields) == 0 {
		return nil
	}

	return fields
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// isEmail accepts a bare address only, not "Name <addr>".
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// isPassword checks ^(?=.*[A-Za-z])(?=.*\d)(?=.*[@$!%*#?&])[A-Za-z\d@$!%*#?&]{8,15}$,
// which RE2 cannot express because of the lookaheads.
func isPassword(s string) bool {
	if len(s) < passwordMinLength || len(s) > passwordMaxLength {
		return false
	}

	var hasLetter, hasDigit, hasSpecial bool
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSpecials, c):
			hasSpecial = true
		default:
			return false
		}
	}

	return hasLetter && hasDigit && hasSpecial
}
