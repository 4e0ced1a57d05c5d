package models

import "github.com/dmitrijs2005/authshell/internal/common"

// Credentials is what a register or login form submits. It lives only for
// the duration of one submit action.
type Credentials struct {
	Email    string
	Password []byte
}

// Wipe zeroes the password bytes.
func (c *Credentials) Wipe() {
	common.WipeByteArray(c.Password)
}
