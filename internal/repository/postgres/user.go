package postgres

import (
	"context"
	"database/sql"
	"time"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (uid, username, email, avatar_id, reputation, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, u.UID, u.Username, u.Email, u.AvatarID, u.Reputation, now, now)
	return err
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT uid, username, email, avatar_id, reputation, created_on, updated_on FROM users WHERE uid = $1`
	err := r.db.QueryRowContext(ctx, query, uid).Scan(&u.UID, &u.Username, &u.Email, &u.AvatarID, &u.Reputation, &u.CreatedOn, &u.UpdatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT uid, username, email, avatar_id, reputation, created_on, updated_on FROM users WHERE username = $1`
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.UID, &u.Username, &u.Email, &u.AvatarID, &u.Reputation, &u.CreatedOn, &u.UpdatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET username=$1, email=$2, avatar_id=$3, updated_on=$4 WHERE uid=$5`
	_, err := r.db.ExecContext(ctx, query, u.Username, u.Email, u.AvatarID, time.Now(), u.UID)
	return err
}

func (r *userRepository) IncrementReputation(ctx context.Context, uid string, delta int32) error {
	query := `UPDATE users SET reputation = reputation + $1, updated_on = $2 WHERE uid = $3`
	result, err := r.db.ExecContext(ctx, query, delta, time.Now(), uid)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
