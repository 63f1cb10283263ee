package domain

import (
	"net/mail"
	"strings"
	"time"
)

// Client is the organisation a project is delivered for.
type Client struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Client) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(c.Name) == "" {
		errs.Add("name", "client name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		errs.Add("email", "contact email is required")
	} else if addr, err := mail.ParseAddress(c.Email); err != nil || addr.Address != c.Email {
		errs.Add("email", "invalid email address")
	}
	return errs.OrNil()
}
