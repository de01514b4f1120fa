package service_test

import (
	"context"
	"io"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) IncrementReputation(ctx context.Context, uid string, delta int32) error {
	args := m.Called(ctx, uid, delta)
	return args.Error(0)
}

// MockListingRepo
type MockListingRepo struct {
	mock.Mock
}

func (m *MockListingRepo) Create(ctx context.Context, listing *domain.RentalListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepo) GetByID(ctx context.Context, id int32) (*domain.RentalListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalListing), args.Error(1)
}
func (m *MockListingRepo) Update(ctx context.Context, listing *domain.RentalListing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepo) Remove(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockListingRepo) ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.RentalListing, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.RentalListing), args.Get(1).(int32), args.Error(2)
}
func (m *MockListingRepo) ListByOwner(ctx context.Context, ownerUID string, page, pageSize int32) ([]domain.RentalListing, int32, error) {
	args := m.Called(ctx, ownerUID, page, pageSize)
	return args.Get(0).([]domain.RentalListing), args.Get(1).(int32), args.Error(2)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.RentalTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) GetByID(ctx context.Context, id int32) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}
func (m *MockTransactionRepo) UpdateStatus(ctx context.Context, tx *domain.RentalTransaction, expected domain.HandshakeStatus) (bool, error) {
	args := m.Called(ctx, tx, expected)
	return args.Bool(0), args.Error(1)
}
func (m *MockTransactionRepo) SetReview(ctx context.Context, id int32, review *domain.Review) (bool, error) {
	args := m.Called(ctx, id, review)
	return args.Bool(0), args.Error(1)
}
func (m *MockTransactionRepo) ListByParticipant(ctx context.Context, uid string) ([]domain.HandshakeView, error) {
	args := m.Called(ctx, uid)
	return args.Get(0).([]domain.HandshakeView), args.Error(1)
}
func (m *MockTransactionRepo) GetView(ctx context.Context, id int32) (*domain.HandshakeView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HandshakeView), args.Error(1)
}

// MockReputationRepo
type MockReputationRepo struct {
	mock.Mock
}

func (m *MockReputationRepo) CreateLog(ctx context.Context, log *domain.ReputationLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
func (m *MockReputationRepo) ListByUser(ctx context.Context, uid string, page, pageSize int32) ([]domain.ReputationLog, int32, error) {
	args := m.Called(ctx, uid, page, pageSize)
	return args.Get(0).([]domain.ReputationLog), args.Get(1).(int32), args.Error(2)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userUID string, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userUID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id int32, userUID string) error {
	args := m.Called(ctx, id, userUID)
	return args.Error(0)
}

// MockNotificationService
type MockNotificationService struct {
	mock.Mock
}

var _ service.NotificationService = (*MockNotificationService)(nil)

func (m *MockNotificationService) Notify(ctx context.Context, userUID, ntype, title, message, link string) {
	m.Called(ctx, userUID, ntype, title, message, link)
}
func (m *MockNotificationService) List(ctx context.Context, userUID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userUID, page, pageSize)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationService) MarkAsRead(ctx context.Context, userUID string, id int32) error {
	args := m.Called(ctx, userUID, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendHandshakeRequest(ctx context.Context, renterEmail, renterName, listingTitle string) error {
	args := m.Called(ctx, renterEmail, renterName, listingTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendHandshakeAccepted(ctx context.Context, ownerEmail, ownerName, listingTitle string) error {
	args := m.Called(ctx, ownerEmail, ownerName, listingTitle)
	return args.Error(0)
}
func (m *MockEmailService) SendHandshakeCompleted(ctx context.Context, renterEmail, renterName, listingTitle string) error {
	args := m.Called(ctx, renterEmail, renterName, listingTitle)
	return args.Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, key, contentType, r)
	return args.String(0), args.Error(1)
}
func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockStorage) Open(key string) (io.ReadCloser, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
