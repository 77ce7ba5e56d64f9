package logger

import "strings"

// MaskEmail redacts the local part of an email for log output, keeping just
// its first character: john.doe@gmail.com -> j***@gmail.com
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "***@***"
	}

	return email[:1] + "***@" + email[at+1:]
}
