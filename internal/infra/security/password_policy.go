package security

import (
	"fmt"

	"github.com/nbutton23/zxcvbn-go"
)

const (
	defaultMinPasswordLength = 8
	defaultMinZxcvbnScore    = 2
)

// PasswordPolicy validates candidate passwords at registration time.
type PasswordPolicy struct {
	minLength int
	minScore  int
}

// NewPasswordPolicy returns the service default policy: minimum length plus a
// zxcvbn strength floor so trivially guessable passwords are rejected even
// when they satisfy the length rule.
func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		minLength: defaultMinPasswordLength,
		minScore:  defaultMinZxcvbnScore,
	}
}

// Check returns human-readable violation messages for the candidate password.
// userInputs (name, email, ...) are penalized by the strength estimator so a
// password derived from the user's own data scores poorly.
func (p *PasswordPolicy) Check(password string, userInputs ...string) []string {
	var problems []string

	if len(password) < p.minLength {
		problems = append(problems, fmt.Sprintf("Password must be at least %d characters long.", p.minLength))
		return problems
	}

	if score := zxcvbn.PasswordStrength(password, userInputs).Score; score < p.minScore {
		problems = append(problems, "Password is too easy to guess.")
	}

	return problems
}
