package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/service"

	"github.com/gorilla/mux"
)

// HandshakeHandler translates authenticated requests into state-machine
// operations. Initiate is the only multipart endpoint; everything else is a
// pass-through with the caller identity from the request context.
type HandshakeHandler struct {
	handshakeSvc service.HandshakeService
	maxFileBytes int64
}

func NewHandshakeHandler(handshakeSvc service.HandshakeService, maxFileSizeMB int64) *HandshakeHandler {
	return &HandshakeHandler{
		handshakeSvc: handshakeSvc,
		maxFileBytes: maxFileSizeMB * 1024 * 1024,
	}
}

func (h *HandshakeHandler) Initiate(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())

	listingID, err := pathID(r, "listingId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	// One form allocation covers all evidence images; oversized parts
	// spill to disk rather than failing the request.
	if err := r.ParseMultipartForm(h.maxFileBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed multipart request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := service.InitiateRequest{
		ListingID:        listingID,
		RenterUsername:   r.FormValue("renter_username"),
		ConditionNotes:   r.FormValue("condition_notes"),
		PaymentConfirmed: r.FormValue("payment_confirmed") == "true",
		IDCardSubmitted:  r.FormValue("id_card_submitted") == "true",
	}

	if dateStr := r.FormValue("agreed_return_date"); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid agreed_return_date, expected yyyy-mm-dd")
			return
		}
		req.AgreedReturnDate = date
	}

	files := r.MultipartForm.File["images"]
	if len(files) > domain.MaxEvidenceImages {
		respondWithError(w, http.StatusBadRequest, "at most 5 proof images are allowed")
		return
	}
	for _, fh := range files {
		if fh.Size > h.maxFileBytes {
			respondWithError(w, http.StatusBadRequest, "image exceeds the size limit")
			return
		}
		f, err := fh.Open()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to read uploaded image")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to read uploaded image")
			return
		}
		req.Images = append(req.Images, service.EvidenceUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	tx, err := h.handshakeSvc.Initiate(r.Context(), caller.UID, req)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, tx)
}

func (h *HandshakeHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())

	views, err := h.handshakeSvc.ListMine(r.Context(), caller.UID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, views)
}

func (h *HandshakeHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	txID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	view, err := h.handshakeSvc.Get(r.Context(), caller.UID, txID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

func (h *HandshakeHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.handshakeSvc.Accept)
}

func (h *HandshakeHandler) MarkReturned(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.handshakeSvc.MarkReturned)
}

func (h *HandshakeHandler) ConfirmReturn(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.handshakeSvc.ConfirmReturn)
}

func (h *HandshakeHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, callerUID string, txID int32) (*domain.RentalTransaction, error)) {
	caller := UserFromContext(r.Context())
	txID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	tx, err := fn(r.Context(), caller.UID, txID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, tx)
}

type submitReviewRequest struct {
	Rating  int32  `json:"rating"`
	Comment string `json:"comment"`
}

func (h *HandshakeHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	txID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var req submitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	review, err := h.handshakeSvc.SubmitReview(r.Context(), caller.UID, txID, req.Rating, req.Comment)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, review)
}

func pathID(r *http.Request, name string) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(id), nil
}
