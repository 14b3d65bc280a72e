package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const OTPValidity = 10 * time.Minute

// GenerateOTP bikin kode 6 digit dari crypto/rand.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
