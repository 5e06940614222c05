package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Password hashes use the passlib pbkdf2_sha256 format so hashes migrated
// from the previous system keep verifying:
//
//	pbkdf2_sha256$<rounds>$<salt>$<digest>
//
// where salt and digest use passlib's adapted base64 alphabet ("." in place
// of "+", no padding).
const (
	hashScheme  = "pbkdf2_sha256"
	hashRounds  = 29000
	hashKeyLen  = 32
	hashSaltLen = 16
)

func ab64Encode(b []byte) string {
	return strings.ReplaceAll(base64.RawStdEncoding.EncodeToString(b), "+", ".")
}

func ab64Decode(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.ReplaceAll(s, ".", "+"))
}

// HashPassword derives a salted PBKDF2-SHA256 hash of the password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, hashSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, hashRounds, hashKeyLen, sha256.New)
	return fmt.Sprintf("%s$%d$%s$%s", hashScheme, hashRounds, ab64Encode(salt), ab64Encode(key)), nil
}

// VerifyPassword reports whether password matches the encoded hash.
// Malformed hashes verify as false rather than erroring; callers treat
// both the same way.
func VerifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 4 || parts[0] != hashScheme {
		return false
	}
	rounds, err := strconv.Atoi(parts[1])
	if err != nil || rounds <= 0 {
		return false
	}
	salt, err := ab64Decode(parts[2])
	if err != nil {
		return false
	}
	want, err := ab64Decode(parts[3])
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, rounds, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
