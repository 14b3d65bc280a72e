package users

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user already exists")
	ErrInvalidOTP   = errors.New("invalid or expired OTP")
)

// Field sensitif tidak pernah ikut ke response JSON.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	ProfileImage string     `json:"profileImage,omitempty"`
	PasswordHash string     `json:"-"`
	OTP          string     `json:"-"`
	OTPExpires   *time.Time `json:"-"`
	Registered   bool       `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
}
