// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is a registered user of the credential vault.
//
// PasswordHash holds a serialized password record. APIKey holds either a
// sealed token envelope or, when encryption is disabled, the raw token.
type Account struct {
	ID             string    `db:"id"`
	UserName       string    `db:"username"`
	NormalizedName string    `db:"normalized_name"`
	PasswordHash   string    `db:"password_hash"`
	APIKey         string    `db:"api_key"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
