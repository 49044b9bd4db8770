package services

import "regexp"

var emailRe = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidEmail applies the liberal shape check used before any OTP request.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
