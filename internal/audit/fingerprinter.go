package audit

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint identifies a secret in logs without revealing it.
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(hash[:])
}

// ShortFingerprint is a log-friendly prefix of Fingerprint.
func ShortFingerprint(secret string) string {
	fp := Fingerprint(secret)
	if len(fp) > 12 {
		return fp[:12]
	}
	return fp
}
