package processor

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
)

const (
	referralCodePrefix   = "REF-"
	referralCodeLength   = 6
	referralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var referralCodePattern = regexp.MustCompile(`^REF-[A-Z0-9]{6}$`)

// GenerateReferralCode returns REF- followed by six uniformly drawn
// characters from [A-Z0-9].
func GenerateReferralCode() (string, error) {
	max := big.NewInt(int64(len(referralCodeAlphabet)))
	var sb strings.Builder
	sb.Grow(len(referralCodePrefix) + referralCodeLength)
	sb.WriteString(referralCodePrefix)
	for i := 0; i < referralCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random index: %w", err)
		}
		sb.WriteByte(referralCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NormalizeReferralCode trims and upper-cases a user-typed code.
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsReferralCode reports whether code has the REF-XXXXXX shape.
func IsReferralCode(code string) bool {
	return referralCodePattern.MatchString(code)
}
