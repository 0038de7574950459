package ports

// PasswordHasher abstracts the credential hashing primitive.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches the stored hash.
	Verify(plaintext, hash string) bool
}
