package security

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	expiryRegex   = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	nonDigitRegex = regexp.MustCompile(`\D`)
	jsProtoRegex  = regexp.MustCompile(`(?i)javascript:`)
	onAttrRegex   = regexp.MustCompile(`(?i)on\w+=`)
)

const passwordSymbols = "@$!%*?&"

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email) && len(email) <= 254
}

// ValidatePassword enforces the registration strength policy: at least 8
// characters, one lowercase, one uppercase, one digit and one symbol from
// the allowed set, with no characters outside that set.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}

// SanitizeInput strips angle brackets, "javascript:" prefixes and inline
// event-handler attribute patterns from user supplied text.
func SanitizeInput(input string) string {
	out := strings.NewReplacer("<", "", ">", "").Replace(input)
	out = jsProtoRegex.ReplaceAllString(out, "")
	out = onAttrRegex.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// ValidateCreditCard runs the Luhn check over the digits of cardNumber
// after stripping every non-digit character.
func ValidateCreditCard(cardNumber string) bool {
	num := nonDigitRegex.ReplaceAllString(cardNumber, "")
	if len(num) < 13 || len(num) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(num) - 1; i >= 0; i-- {
		digit := int(num[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

func ValidateCVV(cvv, cardType string) bool {
	want := 3
	if cardType == "amex" {
		want = 4
	}
	if len(cvv) != want {
		return false
	}
	for _, r := range cvv {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateExpiryDate accepts "MM/YY" and rejects dates before the current
// month.
func ValidateExpiryDate(expiry string) bool {
	if !expiryRegex.MatchString(expiry) {
		return false
	}

	parts := strings.SplitN(expiry, "/", 2)
	expMonth := int(parts[0][0]-'0')*10 + int(parts[0][1]-'0')
	expYear := int(parts[1][0]-'0')*10 + int(parts[1][1]-'0')

	now := time.Now()
	curYear := now.Year() % 100
	curMonth := int(now.Month())

	if expYear < curYear {
		return false
	}
	if expYear == curYear && expMonth < curMonth {
		return false
	}
	return true
}
