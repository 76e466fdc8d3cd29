package session

import (
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// CodeSource produces one-time numeric recovery codes.
type CodeSource interface {
	Next() (string, error)
}

// HOTPCodes derives six-digit codes from a per-process HOTP secret and an
// incrementing counter.
type HOTPCodes struct {
	secret  string
	counter uint64
}

// NewHOTPCodes generates a fresh secret.
func NewHOTPCodes(issuer, accountName string) (*HOTPCodes, error) {
	key, err := hotp.Generate(hotp.GenerateOpts{
		Issuer:      issuer,
		AccountName: accountName,
		Digits:      otp.DigitsSix,
	})
	if err != nil {
		return nil, fmt.Errorf("session: cannot generate recovery secret: %w", err)
	}
	return &HOTPCodes{secret: key.Secret()}, nil
}

// Next returns the code for the next counter value.
func (h *HOTPCodes) Next() (string, error) {
	h.counter++
	code, err := hotp.GenerateCodeCustom(h.secret, h.counter, hotp.ValidateOpts{
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("session: cannot generate recovery code: %w", err)
	}
	return code, nil
}
