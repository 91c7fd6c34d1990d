package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	ssnPattern   = regexp.MustCompile(`^\d{9}$`)
)

// ValidateAmount checks that a currency amount is positive
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("invalid amount: must be greater than 0")
	}
	return nil
}

// ValidateEmail checks basic email address shape
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateZipCode checks for a 5-digit or ZIP+4 code
func ValidateZipCode(zip string) error {
	if !zipPattern.MatchString(zip) {
		return fmt.Errorf("invalid ZIP code")
	}
	return nil
}

// ValidateSSN checks for a 9-digit Social Security Number, with or without
// dashes
func ValidateSSN(ssn string) error {
	if !ssnPattern.MatchString(strings.ReplaceAll(ssn, "-", "")) {
		return fmt.Errorf("invalid Social Security Number")
	}
	return nil
}

// ValidatePassword enforces the minimum password length
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	return nil
}

// ValidateTwoFactorCode checks the shape of a verification code. This is a
// demo stub: any six-digit numeric string is accepted, there is no real OTP
// behind it.
func ValidateTwoFactorCode(code string) error {
	if len(code) != 6 {
		return fmt.Errorf("invalid code: must be 6 digits")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid code: must contain only digits")
		}
	}
	return nil
}

// ValidateAccountNumber checks for an 18-digit account number
func ValidateAccountNumber(number string) error {
	if len(number) != 18 {
		return fmt.Errorf("invalid account number: must be 18 digits")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return fmt.Errorf("invalid account number: must contain only digits")
		}
	}
	return nil
}
