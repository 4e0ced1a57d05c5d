// Package models defines the client-side data shapes shared by the
// authshell API client, services and views.
package models

import (
	"bytes"
	"encoding/json"
)

// UserRecord is the user object returned by the backend, kept verbatim.
// The client treats it as opaque: it is stored and displayed, never
// validated.
type UserRecord json.RawMessage

// NewUserRecord copies raw into a UserRecord.
func NewUserRecord(raw []byte) *UserRecord {
	u := UserRecord(bytes.Clone(raw))
	return &u
}

// Raw returns the record bytes as received.
func (u *UserRecord) Raw() json.RawMessage {
	if u == nil {
		return nil
	}
	return json.RawMessage(*u)
}

// MarshalJSON emits the record unchanged so it can be embedded in logs and
// other JSON documents.
func (u UserRecord) MarshalJSON() ([]byte, error) {
	if len(u) == 0 {
		return []byte("null"), nil
	}
	return []byte(u), nil
}

// UnmarshalJSON stores a copy of the incoming bytes.
func (u *UserRecord) UnmarshalJSON(b []byte) error {
	*u = UserRecord(bytes.Clone(b))
	return nil
}

// redactedKeys are top-level keys whose values never leave the process
// through String.
var redactedKeys = []string{"token"}

const redactedValue = `"[redacted]"`

// Email extracts an "email" string from the record: top-level first, then
// inside a "user" object (the login envelope kept as a whole). It returns ""
// otherwise.
func (u *UserRecord) Email() string {
	if u == nil {
		return ""
	}
	var probe struct {
		Email string `json:"email"`
		User  *struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(*u, &probe); err != nil {
		return ""
	}
	if probe.Email == "" && probe.User != nil {
		return probe.User.Email
	}
	return probe.Email
}

// String renders the record for logs and the terminal. Credentials such as
// a top-level "token" are masked; use Raw for the verbatim bytes.
func (u *UserRecord) String() string {
	if u == nil {
		return "<none>"
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(*u, &obj); err != nil || obj == nil {
		return string(*u)
	}

	masked := false
	for _, k := range redactedKeys {
		if _, ok := obj[k]; ok {
			obj[k] = json.RawMessage(redactedValue)
			masked = true
		}
	}
	if !masked {
		return string(*u)
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return "<unprintable>"
	}
	return string(b)
}

// Session is the client-held record of the authenticated user.
// A nil User means nobody is signed in.
type Session struct {
	User *UserRecord
}

// Authenticated reports whether a user is present.
func (s Session) Authenticated() bool {
	return s.User != nil
}
