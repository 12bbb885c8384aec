package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/service"
)

type ReceiptHandler struct {
	receiptSvc service.ReceiptService
}

func NewReceiptHandler(receiptSvc service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptSvc: receiptSvc}
}

type createReceiptsRequest struct {
	Date  string               `json:"date"` // YYYY-MM-DD
	Lines []domain.ReceiptLine `json:"lines"`
}

func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReceiptsRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondBadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}
	result, svcErr := h.receiptSvc.CreateReceipts(r.Context(), date, req.Lines)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

func (h *ReceiptHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", mux.Vars(r)["date"])
	if err != nil {
		respondBadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}
	membership, fines, svcErr := h.receiptSvc.ReceiptsByDate(r.Context(), date)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"membership_payments": membership,
		"fine_payments":       fines,
	})
}

func (h *ReceiptHandler) DeleteFinePayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["paymentID"], 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid payment id")
		return
	}
	if err := h.receiptSvc.DeleteFinePayment(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ReceiptHandler) DeleteMembershipPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["paymentID"], 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid payment id")
		return
	}
	if err := h.receiptSvc.DeleteMembershipPayment(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
