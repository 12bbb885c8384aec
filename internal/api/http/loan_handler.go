package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/lakkaru/eksath-samithiya-backend/internal/service"
)

type LoanHandler struct {
	loanSvc service.LoanService
}

func NewLoanHandler(loanSvc service.LoanService) *LoanHandler {
	return &LoanHandler{loanSvc: loanSvc}
}

type createLoanRequest struct {
	MemberNo     int32  `json:"member_no"`
	LoanNumber   int32  `json:"loan_number"`
	Principal    int64  `json:"principal"`
	LoanDate     string `json:"loan_date"` // YYYY-MM-DD, today when omitted
	Guarantor1No int32  `json:"guarantor1_no"`
	Guarantor2No int32  `json:"guarantor2_no"`
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	var loanDate time.Time
	if req.LoanDate != "" {
		parsed, err := time.Parse("2006-01-02", req.LoanDate)
		if err != nil {
			respondBadRequest(w, "invalid loan date, expected YYYY-MM-DD")
			return
		}
		loanDate = parsed
	}
	loan, err := h.loanSvc.CreateLoan(r.Context(), req.MemberNo, req.LoanNumber,
		req.Principal, loanDate, req.Guarantor1No, req.Guarantor2No)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, loan)
}

func loanIDVar(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["loanID"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := loanIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid loan id")
		return
	}
	loan, err := h.loanSvc.GetLoan(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

func (h *LoanHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loanSvc.ListActiveLoans(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	next, err := h.loanSvc.NextLoanNumber(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int32{"next_loan_number": next})
}

func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := loanIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid loan id")
		return
	}
	if err := h.loanSvc.DeleteLoan(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *LoanHandler) MemberLoan(w http.ResponseWriter, r *http.Request) {
	no, err := strconv.ParseInt(mux.Vars(r)["memberNo"], 10, 32)
	if err != nil || no <= 0 {
		respondBadRequest(w, "invalid member number")
		return
	}
	loan, payments, acc, svcErr := h.loanSvc.LoanOfMember(r.Context(), int32(no))
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"loan":     loan,
		"payments": payments,
		"accrual":  acc,
	})
}

func (h *LoanHandler) Accrual(w http.ResponseWriter, r *http.Request) {
	id, ok := loanIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid loan id")
		return
	}
	asOf := time.Now()
	if s := r.URL.Query().Get("as_of"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			respondBadRequest(w, "invalid as_of date, expected YYYY-MM-DD")
			return
		}
		asOf = parsed
	}
	acc, err := h.loanSvc.Accrual(r.Context(), id, asOf)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, acc)
}

// BlacklistGuarantors runs the overdue-guarantor sweep on demand,
// outside the nightly schedule.
func (h *LoanHandler) BlacklistGuarantors(w http.ResponseWriter, r *http.Request) {
	flagged, err := h.loanSvc.BlacklistOverdueGuarantors(r.Context(), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"blacklisted": flagged})
}

type paymentRequest struct {
	Principal       int64  `json:"principal"`
	Interest        int64  `json:"interest"`
	PenaltyInterest int64  `json:"penalty_interest"`
	Date            string `json:"date"` // YYYY-MM-DD, today when omitted
}

func (r paymentRequest) parseDate() (time.Time, bool) {
	if r.Date == "" {
		return time.Time{}, true
	}
	parsed, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func (h *LoanHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := loanIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid loan id")
		return
	}
	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	date, ok := req.parseDate()
	if !ok {
		respondBadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}
	group, err := h.loanSvc.RecordPayment(r.Context(), id, req.Principal, req.Interest, req.PenaltyInterest, date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, group)
}

func (h *LoanHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupID"]
	if groupID == "" {
		respondBadRequest(w, "invalid payment group id")
		return
	}
	var req paymentRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	date, ok := req.parseDate()
	if !ok {
		respondBadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}
	group, err := h.loanSvc.UpdatePayment(r.Context(), groupID, req.Principal, req.Interest, req.PenaltyInterest, date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

func (h *LoanHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["groupID"]
	if groupID == "" {
		respondBadRequest(w, "invalid payment group id")
		return
	}
	if err := h.loanSvc.DeletePayment(r.Context(), groupID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
