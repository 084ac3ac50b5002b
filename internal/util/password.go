package util

import "golang.org/x/crypto/bcrypt"

// bcrypt ignores everything past 72 bytes, and recent library versions
// reject longer inputs outright. The cut is applied on the encoded byte
// boundary, not a rune boundary, so a multi-byte character may be split;
// hashing and verification must share the identical cut or logins for long
// passwords become intermittent.
func truncatePassword(password string) []byte {
	b := []byte(password)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncatePassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), truncatePassword(password)) == nil
}
