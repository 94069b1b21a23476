package model

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

// Identity describes the account behind an update: a message sender,
// a callback presser, or a member joining or leaving a chat.
//
// Optional fields are normalised once by IdentityFrom. Empty strings mean
// "absent"; accessors take the caller's documented default for those.
type Identity struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string // without the leading "@"
	IsBot     bool
}

// IdentityFrom builds an Identity from a platform user. A nil user yields
// the zero Identity.
func IdentityFrom(u *models.User) Identity {
	if u == nil {
		return Identity{}
	}
	return Identity{
		ID:        u.ID,
		FirstName: strings.TrimSpace(u.FirstName),
		LastName:  strings.TrimSpace(u.LastName),
		Username:  strings.TrimPrefix(strings.TrimSpace(u.Username), "@"),
		IsBot:     u.IsBot,
	}
}

// DisplayName returns the first name, or fallback when it is absent.
func (i Identity) DisplayName(fallback string) string {
	if i.FirstName == "" {
		return fallback
	}
	return i.FirstName
}

// LastNameOr returns the last name, or fallback when it is absent.
func (i Identity) LastNameOr(fallback string) string {
	if i.LastName == "" {
		return fallback
	}
	return i.LastName
}

// HandleOr returns "@username", or fallback when there is no username.
func (i Identity) HandleOr(fallback string) string {
	if i.Username == "" {
		return fallback
	}
	return "@" + i.Username
}
