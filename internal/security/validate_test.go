package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "plain address", email: "customer@example.com", want: true},
		{name: "subdomain and plus tag", email: "a.b+tag@mail.example.co", want: true},
		{name: "missing at", email: "customer.example.com", want: false},
		{name: "missing tld", email: "customer@example", want: false},
		{name: "spaces", email: "cust omer@example.com", want: false},
		{name: "empty", email: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidateEmail(tt.email))
		})
	}
}

func TestValidateEmail_LengthCap(t *testing.T) {
	t.Parallel()

	local := make([]byte, 250)
	for i := range local {
		local[i] = 'a'
	}
	long := string(local) + "@x.com"
	assert.False(t, ValidateEmail(long))
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "meets policy", password: "Abcdef1!", want: true},
		{name: "all classes longer", password: "Sup3r$ecret", want: true},
		{name: "too short", password: "Ab1!", want: false},
		{name: "no uppercase", password: "abcdef1!", want: false},
		{name: "no lowercase", password: "ABCDEF1!", want: false},
		{name: "no digit", password: "Abcdefg!", want: false},
		{name: "no symbol", password: "Abcdefg1", want: false},
		{name: "symbol outside allowed set", password: "Abcdef1#", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidatePassword(tt.password))
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "Doe Logistics", want: "Doe Logistics"},
		{name: "angle brackets stripped", input: "<script>alert(1)</script>", want: "scriptalert(1)/script"},
		{name: "javascript protocol removed", input: "JavaScript:alert(1)", want: "alert(1)"},
		{name: "event handler removed", input: `img onerror=alert(1)`, want: "img alert(1)"},
		{name: "whitespace trimmed", input: "  hello  ", want: "hello"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SanitizeInput(tt.input))
		})
	}
}

func TestValidateCreditCard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{name: "valid visa test number", number: "4111111111111111", want: true},
		{name: "valid with spaces and dashes", number: "4111-1111 1111-1111", want: true},
		{name: "valid amex test number", number: "378282246310005", want: true},
		{name: "luhn failure", number: "4111111111111112", want: false},
		{name: "too short", number: "411111111111", want: false},
		{name: "too long", number: "41111111111111111111", want: false},
		{name: "letters only", number: "not-a-card", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidateCreditCard(tt.number))
		})
	}
}

func TestValidateCVV(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidateCVV("123", "visa"))
	assert.True(t, ValidateCVV("123", ""))
	assert.False(t, ValidateCVV("1234", "visa"))
	assert.True(t, ValidateCVV("1234", "amex"))
	assert.False(t, ValidateCVV("123", "amex"))
	assert.False(t, ValidateCVV("12a", "visa"))
	assert.False(t, ValidateCVV("", "visa"))
}

func TestValidateExpiryDate(t *testing.T) {
	t.Parallel()

	now := time.Now()
	future := now.AddDate(1, 0, 0).Format("01/06")
	past := now.AddDate(-1, 0, 0).Format("01/06")

	assert.True(t, ValidateExpiryDate(future))
	assert.True(t, ValidateExpiryDate(now.Format("01/06")), "current month is still valid")
	assert.False(t, ValidateExpiryDate(past))
	assert.False(t, ValidateExpiryDate("13/30"))
	assert.False(t, ValidateExpiryDate("00/30"))
	assert.False(t, ValidateExpiryDate("1/30"))
	assert.False(t, ValidateExpiryDate("01-30"))
	assert.False(t, ValidateExpiryDate(""))
}
