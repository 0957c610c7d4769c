package kernel

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
	"regexp"

	"fooddelivery/internal/pkg/errs"
)

const (
	// OTPLength is the number of ASCII digits in a delivery code.
	OTPLength = 6

	otpMin = 100000
	otpMax = 999999
)

var otpPattern = regexp.MustCompile(`^\d{6}$`)

// OTP is the one-time delivery code handed from the customer to the agent.
//
// Codes are drawn uniformly from 100000..999999; a leading zero is never produced,
// so every code is a six digit number without padding. The zero value is an empty code
// that matches nothing.
type OTP struct {
	code string
}

// NewRandomOTP draws a code from crypto/rand.
func NewRandomOTP() (OTP, error) {
	return NewRandomOTPFrom(rand.Reader)
}

// NewRandomOTPFrom draws a code from the given entropy source.
func NewRandomOTPFrom(r io.Reader) (OTP, error) {
	n, err := rand.Int(r, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return OTP{}, fmt.Errorf("generate otp: %w", err)
	}
	return OTP{code: fmt.Sprintf("%06d", n.Int64()+otpMin)}, nil
}

// RestoreOTP rebuilds a stored code. An empty string restores the empty code.
func RestoreOTP(code string) (OTP, error) {
	if code == "" {
		return OTP{}, nil
	}
	if !otpPattern.MatchString(code) {
		return OTP{}, errs.NewValueIsInvalidErrorWithCause("otp", fmt.Errorf("expected %d digits", OTPLength))
	}
	return OTP{code: code}, nil
}

// IsEmpty reports whether no code is stored.
func (o OTP) IsEmpty() bool {
	return o.code == ""
}

// Matches compares a supplied code with the stored one in constant time.
// The comparison is an exact string match; the supplied value is not trimmed or normalised.
// An empty stored code matches nothing.
func (o OTP) Matches(supplied string) bool {
	if o.code == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(o.code), []byte(supplied)) == 1
}

// Code returns the digits, for persistence and for the customer notification only.
func (o OTP) Code() string {
	return o.code
}

// String masks the code so it does not leak into logs.
func (o OTP) String() string {
	if o.code == "" {
		return ""
	}
	return "******"
}
