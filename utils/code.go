package utils

import (
	"crypto/rand"
	"math/big"
)

// codeAlphabet drops 0/O/1/I so printed codes survive bad lighting and
// guest typos.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// GenerateAccessCode returns a 6-character table access code.
func GenerateAccessCode() string {
	max := big.NewInt(int64(len(codeAlphabet)))
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}
