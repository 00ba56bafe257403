package types

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// Entity ids are 24 lowercase hex characters (12 random bytes), matching
// the identity format the HTTP surface validates before any store lookup.
var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

func NewID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		panic("types: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}
