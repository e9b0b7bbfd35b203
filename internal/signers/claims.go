// Package signers implements the signing authorities that mint exchanged tokens.
package signers

import (
	"fmt"
	"slices"
)

// MaxSubjectLength is the longest subject a signer accepts.
const MaxSubjectLength = 128

// reservedClaims can never be used as custom claim names.
var reservedClaims = []string{
	"acr", "amr", "at_hash", "aud", "auth_time", "azp", "cnf", "c_hash",
	"exp", "firebase", "iat", "iss", "jti", "nbf", "nonce", "sub", "uid",
}

// ValidateClaimName fails if name cannot be used as a custom claim.
func ValidateClaimName(name string) error {
	if name == "" {
		return fmt.Errorf("claim name is empty")
	}
	if slices.Contains(reservedClaims, name) {
		return fmt.Errorf("claim name '%s' is reserved", name)
	}
	return nil
}

func validateSubject(subject string) error {
	if subject == "" {
		return fmt.Errorf("subject is empty")
	}
	if len(subject) > MaxSubjectLength {
		return fmt.Errorf("subject exceeds %d characters", MaxSubjectLength)
	}
	return nil
}

func validateClaims(claims map[string]bool) error {
	for name := range claims {
		if err := ValidateClaimName(name); err != nil {
			return err
		}
	}
	return nil
}
