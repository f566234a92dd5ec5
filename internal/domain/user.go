package domain

import (
	"context"
	"time"
)

// User is deliberately minimal: authentication lives upstream of this
// service, which only needs booking ownership and a mail recipient.
type User struct {
	ID        int
	Name      string
	Email     string
	CreatedAt time.Time
}

type UserRepository interface {
	GetById(ctx context.Context, id int) (*User, error)
}
