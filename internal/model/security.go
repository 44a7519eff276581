package model

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) (bool, error)
}

// TOTP generates secrets and verifies time-based codes.
type TOTP interface {
	GenerateSecret(accountName string) (secret string, uri string, err error)
	Verify(secret, code string) bool
}
