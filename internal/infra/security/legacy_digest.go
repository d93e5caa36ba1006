package security

import (
	"crypto/sha1" //nolint:gosec // mandated by the existing breach corpus
	"encoding/hex"
	"strings"
)

// LegacyDigest returns the uppercase SHA-1 hex digest used by the breached
// password corpus. The corpus was hashed with SHA-1 long before this service
// existed; switching digests requires re-hashing the entire corpus, so this
// stays SHA-1 deliberately. It is never used for credential storage.
func LegacyDigest(value string) string {
	sum := sha1.Sum([]byte(value))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
