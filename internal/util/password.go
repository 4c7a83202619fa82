package util

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

const (
	passwordLength  = 12
	lowerChars      = "abcdefghijklmnopqrstuvwxyz"
	upperChars      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars      = "0123456789"
	symbolChars     = "!@#$%^&*()"
	allPasswordChar = lowerChars + upperChars + digitChars + symbolChars
)

// GenerateTemporaryPassword builds the 12-character credential mailed to a
// freshly created learner. At least one character of each class is present.
func GenerateTemporaryPassword() (string, error) {
	pick := func(set string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return 0, err
		}
		return set[n.Int64()], nil
	}

	buf := make([]byte, passwordLength)
	classes := []string{lowerChars, upperChars, digitChars, symbolChars}
	for i := range buf {
		set := allPasswordChar
		if i < len(classes) {
			set = classes[i]
		}
		ch, err := pick(set)
		if err != nil {
			return "", err
		}
		buf[i] = ch
	}

	// Shuffle so the guaranteed classes are not always in front.
	for i := len(buf) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := n.Int64()
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf), nil
}
