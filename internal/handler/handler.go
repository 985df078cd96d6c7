// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the board service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Shivanand-hulikatti/pitchside-boards/internal/model"
	"github.com/go-chi/chi/v5"
)

// BoardService is the subset of service.BoardService the handlers call.
type BoardService interface {
	GetByID(ctx context.Context, id string) (*model.Board, error)
	ListAll(ctx context.Context) ([]model.Board, error)
	ListByLocation(ctx context.Context, loc model.Location) ([]model.Board, error)
	ListByStatus(ctx context.Context, status model.Status) ([]model.Board, error)
	ListAvailable(ctx context.Context) ([]model.Board, error)
	ListSponsored(ctx context.Context) ([]model.Board, error)
	ListRenewalsDue(ctx context.Context) ([]model.Board, error)
	Stats(ctx context.Context) (model.Stats, error)

	Reserve(ctx context.Context, id string, req model.ReserveRequest) (*model.Board, error)
	ConfirmPayment(ctx context.Context, id string, paidAmount int64) (*model.Board, error)
	CancelReservation(ctx context.Context, id string) (*model.Board, error)
	RenewContract(ctx context.Context, id string, newEndDate time.Time) (*model.Board, error)
	EndContract(ctx context.Context, id string) (*model.Board, error)
	FlagRenewal(ctx context.Context, id string) (*model.Board, error)
	FlagRenewals(ctx context.Context) (int, error)
	SetPrice(ctx context.Context, id string, price int64) (*model.Board, error)
}

// BoardHandler holds all HTTP handlers for the board registry API.
type BoardHandler struct {
	svc    BoardService
	logger *log.Logger
}

// NewBoardHandler constructs a BoardHandler. A nil logger uses log.Default.
func NewBoardHandler(svc BoardService, logger *log.Logger) *BoardHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &BoardHandler{svc: svc, logger: logger}
}

const (
	codeNotFound           = "not_found"
	codeBoardNotAvailable  = "board_not_available"
	codeInvalidTransition  = "invalid_transition"
	codeInvalidAmount      = "invalid_amount"
	codeInvalidDate        = "invalid_date"
	codeValidation         = "validation_error"
	codeInvalidRequestBody = "invalid_request_body"
	codeUnauthorized       = "unauthorized"
	codeForbidden          = "forbidden"
	codeInternalError      = "internal_error"
)

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: code})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeServiceError maps a service error onto a status and error code.
// ErrBoardNotAvailable must be checked before ErrInvalidTransition, which it wraps.
func (h *BoardHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "board not found")
	case errors.Is(err, model.ErrBoardNotAvailable):
		writeError(w, http.StatusConflict, codeBoardNotAvailable, err.Error())
	case errors.Is(err, model.ErrInvalidTransition):
		writeError(w, http.StatusConflict, codeInvalidTransition, err.Error())
	case errors.Is(err, model.ErrInvalidAmount):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidAmount, err.Error())
	case errors.Is(err, model.ErrInvalidDate):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidDate, err.Error())
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, codeValidation, err.Error())
	default:
		h.logger.Printf("request failed method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func (h *BoardHandler) writeBoards(w http.ResponseWriter, r *http.Request, boards []model.Board, err error) {
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	// Return an empty array rather than null for better client compatibility.
	if boards == nil {
		boards = []model.Board{}
	}
	writeJSON(w, http.StatusOK, boards)
}

func (h *BoardHandler) writeBoard(w http.ResponseWriter, r *http.Request, board *model.Board, err error) {
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// ─── Public queries ───────────────────────────────────────────────────────────

// ListBoards handles GET /boards
// Optional ?location= and ?status= filters may be combined.
func (h *BoardHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	status := model.Status(r.URL.Query().Get("status"))

	var (
		boards []model.Board
		err    error
	)
	switch {
	case location != "":
		boards, err = h.svc.ListByLocation(r.Context(), model.Location(location))
	case status != "":
		boards, err = h.svc.ListByStatus(r.Context(), status)
	default:
		boards, err = h.svc.ListAll(r.Context())
	}

	if err == nil && location != "" && status != "" {
		if !status.Valid() {
			err = &model.ValidationError{Field: "status", Reason: "unknown status " + string(status)}
		} else {
			filtered := boards[:0]
			for _, b := range boards {
				if b.Status == status {
					filtered = append(filtered, b)
				}
			}
			boards = filtered
		}
	}

	h.writeBoards(w, r, boards, err)
}

// ListAvailable handles GET /boards/available
func (h *BoardHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	boards, err := h.svc.ListAvailable(r.Context())
	h.writeBoards(w, r, boards, err)
}

// ListSponsored handles GET /boards/sponsored
// Includes boards whose contract is due for renewal.
func (h *BoardHandler) ListSponsored(w http.ResponseWriter, r *http.Request) {
	boards, err := h.svc.ListSponsored(r.Context())
	h.writeBoards(w, r, boards, err)
}

// ListRenewals handles GET /boards/renewals
func (h *BoardHandler) ListRenewals(w http.ResponseWriter, r *http.Request) {
	boards, err := h.svc.ListRenewalsDue(r.Context())
	h.writeBoards(w, r, boards, err)
}

// GetBoard handles GET /boards/{id}
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	h.writeBoard(w, r, board, err)
}

// Stats handles GET /stats
func (h *BoardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ─── Staff transitions ────────────────────────────────────────────────────────

// Reserve handles POST /staff/boards/{id}/reserve
// Attaches a sponsor and a pending contract to an available board.
func (h *BoardHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req model.ReserveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body: "+err.Error())
		return
	}

	board, err := h.svc.Reserve(r.Context(), chi.URLParam(r, "id"), req)
	h.writeBoard(w, r, board, err)
}

// ConfirmPayment handles POST /staff/boards/{id}/confirm-payment
func (h *BoardHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req model.ConfirmPaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body: "+err.Error())
		return
	}

	board, err := h.svc.ConfirmPayment(r.Context(), chi.URLParam(r, "id"), req.PaidAmount)
	h.writeBoard(w, r, board, err)
}

// CancelReservation handles POST /staff/boards/{id}/cancel
func (h *BoardHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.CancelReservation(r.Context(), chi.URLParam(r, "id"))
	h.writeBoard(w, r, board, err)
}

// RenewContract handles POST /staff/boards/{id}/renew
// Body: {"end_date": "YYYY-MM-DD"}
func (h *BoardHandler) RenewContract(w http.ResponseWriter, r *http.Request) {
	var req model.RenewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body: "+err.Error())
		return
	}
	end, err := model.ParseDate("end_date", req.EndDate)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	board, err := h.svc.RenewContract(r.Context(), chi.URLParam(r, "id"), end)
	h.writeBoard(w, r, board, err)
}

// EndContract handles POST /staff/boards/{id}/end
func (h *BoardHandler) EndContract(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.EndContract(r.Context(), chi.URLParam(r, "id"))
	h.writeBoard(w, r, board, err)
}

// FlagRenewal handles POST /staff/boards/{id}/flag-renewal
func (h *BoardHandler) FlagRenewal(w http.ResponseWriter, r *http.Request) {
	board, err := h.svc.FlagRenewal(r.Context(), chi.URLParam(r, "id"))
	h.writeBoard(w, r, board, err)
}

// SetPrice handles PUT /staff/boards/{id}/price
func (h *BoardHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	var req model.SetPriceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body: "+err.Error())
		return
	}

	board, err := h.svc.SetPrice(r.Context(), chi.URLParam(r, "id"), req.PricePerSeason)
	h.writeBoard(w, r, board, err)
}

// SweepRenewals handles POST /staff/renewals/sweep
func (h *BoardHandler) SweepRenewals(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.FlagRenewals(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"flagged": n})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
