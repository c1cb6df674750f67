package random

import "math/rand"

var (
	// CharsetNumeric contains the digits 0-9
	CharsetNumeric = []rune("0123456789")

	// CharsetTokens contains all alphanumeric characters plus '.-#+*~'
	CharsetTokens = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ01234567890.-#+*~")
)

// String generates a random string with a specific length, only using characters out of the given charset
func String(length int, charset []rune) string {
	buf := make([]rune, length)
	for i := range buf {
		buf[i] = charset[rand.Intn(len(charset))]
	}
	return string(buf)
}
