package service

import (
	"context"
	"fmt"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/repository"
)

type reputationService struct {
	repRepo  repository.ReputationRepository
	userRepo repository.UserRepository
	noteSvc  NotificationService
}

func NewReputationService(
	repRepo repository.ReputationRepository,
	userRepo repository.UserRepository,
	noteSvc NotificationService,
) ReputationService {
	return &reputationService{
		repRepo:  repRepo,
		userRepo: userRepo,
		noteSvc:  noteSvc,
	}
}

// Award appends the immutable log entry, then bumps the cached total on the
// user row by the same delta. The log is the source of truth; the cached
// value is never recomputed from it on this path.
func (s *reputationService) Award(ctx context.Context, userUID string, sourceType domain.ReputationSource, sourceID string, points int32, reason string) (*domain.ReputationLog, error) {
	log := &domain.ReputationLog{
		UserUID:    userUID,
		SourceType: sourceType,
		SourceID:   sourceID,
		Points:     points,
		Reason:     reason,
	}
	if err := s.repRepo.CreateLog(ctx, log); err != nil {
		return nil, err
	}

	if err := s.userRepo.IncrementReputation(ctx, userUID, points); err != nil {
		return nil, err
	}

	s.noteSvc.Notify(ctx, userUID,
		"REPUTATION_GRANTED",
		"Reputation increased",
		fmt.Sprintf("You gained %d reputation", points),
		"/dashboard")

	logger.Info("Reputation awarded", "userUID", userUID, "sourceType", sourceType, "points", points)
	return log, nil
}

func (s *reputationService) ListLog(ctx context.Context, userUID string, page, pageSize int32) ([]domain.ReputationLog, int32, error) {
	return s.repRepo.ListByUser(ctx, userUID, page, pageSize)
}
