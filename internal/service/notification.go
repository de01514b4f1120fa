package service

import (
	"context"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/logger"
	"krayaa-backend/internal/repository"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

// Notify is fire-and-forget: a missing recipient is a silent no-op (some
// flows intentionally skip notification on self-action) and a write failure
// is logged, never propagated.
func (s *notificationService) Notify(ctx context.Context, userUID, ntype, title, message, link string) {
	if userUID == "" {
		return
	}

	note := &domain.Notification{
		UserUID: userUID,
		Type:    ntype,
		Title:   title,
		Message: message,
		Link:    link,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("Failed to create notification", "userUID", userUID, "type", ntype, "error", err)
	}
}

func (s *notificationService) List(ctx context.Context, userUID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, userUID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userUID string, id int32) error {
	return s.noteRepo.MarkAsRead(ctx, id, userUID)
}
