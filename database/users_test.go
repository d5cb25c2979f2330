package database

import (
	"errors"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserQueries(t *testing.T) {
	db := newTestDB(t)

	created, err := CreateUser(db, "collector", "pw")
	require.NoError(t, err)
	assert.Greater(t, created.ID, int64(0))

	user, err := GetUserByUsername(db, "collector")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)

	missing, err := GetUserByUsername(db, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, err := GetAllUsers(db)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCreateUserDuplicateSurfacesUniqueConstraint(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateUser(db, "collector", "pw")
	require.NoError(t, err)

	_, err = CreateUser(db, "collector", "other")
	require.Error(t, err)
	var sqliteErr sqlite3.Error
	require.True(t, errors.As(err, &sqliteErr))
	assert.Equal(t, sqlite3.ErrConstraintUnique, sqliteErr.ExtendedCode)
}
