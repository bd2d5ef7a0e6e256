package utils

import (
	"math/rand"
	"time"
)

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var tokenRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateRandomToken returns an alphanumeric code of the given length,
// used for the password-reset codes mailed to users.
func GenerateRandomToken(length int) string {
	token := make([]byte, length)
	for i := range token {
		token[i] = tokenCharset[tokenRand.Intn(len(tokenCharset))]
	}
	return string(token)
}
