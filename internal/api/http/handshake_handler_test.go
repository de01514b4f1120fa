package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockHandshakeService struct {
	mock.Mock
}

func (m *mockHandshakeService) Initiate(ctx context.Context, ownerUID string, req service.InitiateRequest) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, ownerUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}
func (m *mockHandshakeService) Accept(ctx context.Context, callerUID string, txID int32) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, callerUID, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}
func (m *mockHandshakeService) MarkReturned(ctx context.Context, callerUID string, txID int32) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, callerUID, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}
func (m *mockHandshakeService) ConfirmReturn(ctx context.Context, callerUID string, txID int32) (*domain.RentalTransaction, error) {
	args := m.Called(ctx, callerUID, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RentalTransaction), args.Error(1)
}
func (m *mockHandshakeService) SubmitReview(ctx context.Context, callerUID string, txID int32, rating int32, comment string) (*domain.Review, error) {
	args := m.Called(ctx, callerUID, txID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}
func (m *mockHandshakeService) Get(ctx context.Context, callerUID string, txID int32) (*domain.HandshakeView, error) {
	args := m.Called(ctx, callerUID, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HandshakeView), args.Error(1)
}
func (m *mockHandshakeService) ListMine(ctx context.Context, callerUID string) ([]domain.HandshakeView, error) {
	args := m.Called(ctx, callerUID)
	return args.Get(0).([]domain.HandshakeView), args.Error(1)
}

func handshakeTestRouter(svc service.HandshakeService) *mux.Router {
	h := NewHandshakeHandler(svc, 5)
	r := mux.NewRouter()
	r.HandleFunc("/api/handshakes/initiate/{listingId}", h.Initiate).Methods(http.MethodPost)
	r.HandleFunc("/api/handshakes/{id}/accept", h.Accept).Methods(http.MethodPost)
	r.HandleFunc("/api/handshakes/{id}/review", h.SubmitReview).Methods(http.MethodPost)
	return r
}

func asUser(r *http.Request, uid string) *http.Request {
	return r.WithContext(WithUser(r.Context(), &domain.User{UID: uid, Username: uid}))
}

func multipartInitiateBody(t *testing.T, imageCount int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	_ = mw.WriteField("renter_username", "renter")
	_ = mw.WriteField("agreed_return_date", "2025-06-08")
	_ = mw.WriteField("payment_confirmed", "true")
	_ = mw.WriteField("id_card_submitted", "true")
	for i := 0; i < imageCount; i++ {
		fw, err := mw.CreateFormFile("images", "proof.jpg")
		if err != nil {
			t.Fatalf("creating form file: %v", err)
		}
		_, _ = fw.Write([]byte{0xFF, 0xD8, 0xFF})
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("closing multipart writer: %v", err)
	}
	return body, mw.FormDataContentType()
}

func TestHandshakeHandler_Initiate(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(mockHandshakeService)
		svc.On("Initiate", mock.Anything, "owner-uid", mock.MatchedBy(func(req service.InitiateRequest) bool {
			return req.ListingID == 3 && req.RenterUsername == "renter" && len(req.Images) == 3 && req.PaymentConfirmed
		})).Return(&domain.RentalTransaction{ID: 7, Status: domain.StatusPendingRenterAcceptance}, nil)

		body, contentType := multipartInitiateBody(t, 3)
		req := httptest.NewRequest(http.MethodPost, "/api/handshakes/initiate/3", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handshakeTestRouter(svc).ServeHTTP(rec, asUser(req, "owner-uid"))
		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "PENDING_RENTER_ACCEPTANCE")
	})

	t.Run("TooManyImagesRejectedBeforeService", func(t *testing.T) {
		svc := new(mockHandshakeService)
		body, contentType := multipartInitiateBody(t, 6)
		req := httptest.NewRequest(http.MethodPost, "/api/handshakes/initiate/3", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handshakeTestRouter(svc).ServeHTTP(rec, asUser(req, "owner-uid"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Initiate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("BadListingID", func(t *testing.T) {
		svc := new(mockHandshakeService)
		body, contentType := multipartInitiateBody(t, 3)
		req := httptest.NewRequest(http.MethodPost, "/api/handshakes/initiate/abc", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handshakeTestRouter(svc).ServeHTTP(rec, asUser(req, "owner-uid"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandshakeHandler_Accept(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		svc := new(mockHandshakeService)
		svc.On("Accept", mock.Anything, "renter-uid", int32(7)).
			Return(&domain.RentalTransaction{ID: 7, Status: domain.StatusActive}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/handshakes/7/accept", nil)
		rec := httptest.NewRecorder()
		handshakeTestRouter(svc).ServeHTTP(rec, asUser(req, "renter-uid"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "ACTIVE")
	})

	t.Run("ForbiddenForWrongActor", func(t *testing.T) {
		svc := new(mockHandshakeService)
		svc.On("Accept", mock.Anything, "owner-uid", int32(7)).Return(nil, domain.ErrForbidden)

		req := httptest.NewRequest(http.MethodPost, "/api/handshakes/7/accept", nil)
		rec := httptest.NewRecorder()
		handshakeTestRouter(svc).ServeHTTP(rec, asUser(req, "owner-uid"))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("ConflictOnStaleStatus", func(t *testing.T) {
		svc := new(mockHandshakeService)
		svc.On("Accept", mock.Anything, "renter-uid", int32(7)).
			Return(nil, &domain.StatusConflictError{
				Expected: domain.StatusPendingRenterAcceptance,
				Actual:   domain.StatusActive,
			})

		req := httptest.NewRequest(http.MethodPost, "/api/handshakes/7/accept", nil)
		rec := httptest.NewRecorder()
		handshakeTestRouter(svc).ServeHTTP(rec, asUser(req, "renter-uid"))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "transaction is ACTIVE")
	})
}

func TestHandshakeHandler_SubmitReview(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(mockHandshakeService)
		svc.On("SubmitReview", mock.Anything, "renter-uid", int32(7), int32(5), "great").
			Return(&domain.Review{Rating: 5, Comment: "great"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/handshakes/7/review",
			strings.NewReader(`{"rating":5,"comment":"great"}`))
		rec := httptest.NewRecorder()
		handshakeTestRouter(svc).ServeHTTP(rec, asUser(req, "renter-uid"))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("DuplicateReviewConflicts", func(t *testing.T) {
		svc := new(mockHandshakeService)
		svc.On("SubmitReview", mock.Anything, "renter-uid", int32(7), int32(4), "").
			Return(nil, domain.ErrAlreadyReviewed)

		req := httptest.NewRequest(http.MethodPost, "/api/handshakes/7/review",
			strings.NewReader(`{"rating":4}`))
		rec := httptest.NewRecorder()
		handshakeTestRouter(svc).ServeHTTP(rec, asUser(req, "renter-uid"))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		svc := new(mockHandshakeService)
		req := httptest.NewRequest(http.MethodPost, "/api/handshakes/7/review", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		handshakeTestRouter(svc).ServeHTTP(rec, asUser(req, "renter-uid"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
