package common

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeUsername trims and lowercases so "Admin" and "admin" are the
// same account.
func NormalizeUsername(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// RandomToken returns a 32-char hex token for reset links and stored
// image filenames.
func RandomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
