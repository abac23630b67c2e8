package sqlite_test

import "github.com/aussiebroadwan/invoicer/internal/invoicer/domain"

func userFixture(email string) domain.User {
	return domain.User{Email: email, Name: "Fixture", PasswordHash: "argon2:dummy"}
}
