package entities

import "time"

type User struct {
	UserID       string     `json:"user_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	PasswordHash string     `json:"-"`
	Avatar       string     `json:"avatar,omitempty"`
	GoogleID     string     `json:"-"`
	OTPHash      string     `json:"-"`
	OTPExpires   *time.Time `json:"-"`
	OTPAttempts  int        `json:"-"`
	IsVerified   bool       `json:"isVerified"`
	IsBlocked    bool       `json:"isBlocked"`
	IsAdmin      bool       `json:"isAdmin"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) ClearOTP() {
	u.OTPHash = ""
	u.OTPExpires = nil
	u.OTPAttempts = 0
}

func (u *User) OTPExpired(now time.Time) bool {
	return u.OTPExpires == nil || now.After(*u.OTPExpires)
}
