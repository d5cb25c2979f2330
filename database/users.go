package database

import (
	"database/sql"
	"fmt"

	"cardkeep/model"
)

func GetAllUsers(dbtx DBTX) ([]model.User, error) {
	users := []model.User{}
	if err := dbtx.Select(&users, `SELECT id, username, password FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// GetUserByUsername returns nil when no such user exists.
func GetUserByUsername(dbtx DBTX, username string) (*model.User, error) {
	var user model.User
	err := dbtx.Get(&user, `SELECT id, username, password FROM users WHERE username = ?`, username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", username, err)
	}
	return &user, nil
}

func CreateUser(dbtx DBTX, username, password string) (*model.User, error) {
	res, err := dbtx.Exec(`INSERT INTO users (username, password) VALUES (?, ?)`, username, password)
	if err != nil {
		return nil, fmt.Errorf("CreateUser (%s) failed: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted user id: %w", err)
	}
	return &model.User{ID: id, Username: username, Password: password}, nil
}
