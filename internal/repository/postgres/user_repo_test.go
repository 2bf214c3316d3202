package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pruve-api/internal/domain/entity"
	apperrors "github.com/yourusername/pruve-api/internal/pkg/errors"
)

func TestUserRepo_CreateAndGet(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := NewUserRepo(db)
	user := &entity.User{Email: "fan@pruve.app", Name: "fan", Picture: "fan.png"}

	// Act
	require.NoError(t, repo.Create(user))
	byID, errID := repo.GetByID(user.ID)
	byEmail, errEmail := repo.GetByEmail("fan@pruve.app")

	// Assert
	require.NoError(t, errID)
	require.NoError(t, errEmail)
	assert.Equal(t, "fan", byID.Name)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepo_Create_DuplicateEmailIsConflict(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := NewUserRepo(db)
	require.NoError(t, repo.Create(&entity.User{Email: "fan@pruve.app", Name: "fan"}))

	// Act
	err := repo.Create(&entity.User{Email: "fan@pruve.app", Name: "impostor"})

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserRepo_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	_, err := repo.GetByID(42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = repo.GetByEmail("ghost@pruve.app")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepo_ListAndCount(t *testing.T) {
	// Arrange
	db := newTestDB(t)
	repo := NewUserRepo(db)
	a := seedUser(t, db, "a@pruve.app", "a")
	b := seedUser(t, db, "b@pruve.app", "b")

	// Act
	users, err := repo.List()
	require.NoError(t, err)
	count, err := repo.CountByIDs([]uint{a.ID, b.ID, 999})
	require.NoError(t, err)
	empty, err := repo.CountByIDs(nil)
	require.NoError(t, err)

	// Assert
	require.Len(t, users, 2)
	assert.Equal(t, a.ID, users[0].ID)
	assert.Equal(t, int64(2), count)
	assert.Zero(t, empty)
}
