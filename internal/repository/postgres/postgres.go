package postgres

import (
	"database/sql"

	"krayaa-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ListingRepository
	repository.TransactionRepository
	repository.ReputationRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		ListingRepository:      NewListingRepository(db),
		TransactionRepository:  NewTransactionRepository(db),
		ReputationRepository:   NewReputationRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
