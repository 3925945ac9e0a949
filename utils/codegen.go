package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// ResellerCodeLength is the length of a shareable referral code.
const ResellerCodeLength = 8

// GenerateResellerCode derives a referral code from the reseller's email and
// the registration instant: first 8 hex chars of SHA-256(email + unix
// seconds), uppercased. The code is assigned exactly once and never
// recomputed. Collisions are not checked here; the unique index on
// resellers.unique_code is the only backstop.
func GenerateResellerCode(email string, at time.Time) string {
	sum := sha256.Sum256([]byte(email + strconv.FormatInt(at.Unix(), 10)))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:ResellerCodeLength])
}
