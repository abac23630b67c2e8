package domain

import "time"

type User struct {
	ID           int64
	Email        string // unique, compared as stored
	Name         string
	PasswordHash string // argon2id PHC string
	CreatedAt    time.Time
}
