package models

import "time"

type AppUser struct {
	ID        int64     `json:"id" db:"id" bson:"_id"`
	Username  string    `json:"username" db:"username" bson:"username"`
	Password  string    `json:"-" db:"password_hash" bson:"password_hash"`
	CreatedAt time.Time `json:"created_at" db:"created_at" bson:"created_at"`
}

// Credentials is the login and signup body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
