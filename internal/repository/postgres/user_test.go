package postgres_test

import (
	"context"
	"testing"
	"time"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestUserRepository_GetByUID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows([]string{"uid", "username", "email", "avatar_id", "reputation", "created_on", "updated_on"}).
			AddRow("uid-1", "student", "student@kiit.ac.in", 2, 14, now, now)

		mock.ExpectQuery("SELECT (.+) FROM users WHERE uid = \\$1").
			WithArgs("uid-1").
			WillReturnRows(rows)

		user, err := repo.GetByUID(ctx, "uid-1")
		assert.NoError(t, err)
		assert.Equal(t, "student", user.Username)
		assert.Equal(t, int32(14), user.Reputation)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE uid = \\$1").
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"uid"}))

		_, err := repo.GetByUID(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserRepository_IncrementReputation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET reputation = reputation \\+ \\$1").
			WithArgs(int32(2), sqlmock.AnyArg(), "uid-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementReputation(ctx, "uid-1", 2)
		assert.NoError(t, err)
	})

	t.Run("MissingUser", func(t *testing.T) {
		mock.ExpectExec("UPDATE users SET reputation = reputation \\+ \\$1").
			WithArgs(int32(2), sqlmock.AnyArg(), "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementReputation(ctx, "ghost", 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
