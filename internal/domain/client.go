package domain

import (
	"errors"
	"strings"
	"time"
)

type Client struct {
	ID         int64
	Name       string
	Email      string
	Company    string
	Address    string
	Phone      string
	Notes      string
	IsArchived bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewClient creates a new client with required fields
func NewClient(name, email string) *Client {
	now := time.Now()
	return &Client{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	return nil
}
