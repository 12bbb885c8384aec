package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/service"
)

type FinanceHandler struct {
	financeSvc service.FinanceService
}

func NewFinanceHandler(financeSvc service.FinanceService) *FinanceHandler {
	return &FinanceHandler{financeSvc: financeSvc}
}

// dateRange parses from/to query params, defaulting to the current year.
func dateRange(r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0).Add(-time.Second)

	if s := r.URL.Query().Get("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, false
		}
		from = parsed
	}
	if s := r.URL.Query().Get("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return from, to, false
		}
		to = parsed
	}
	return from, to, true
}

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 32); err == nil && n > 0 {
			page = int32(n)
		}
	}
	if s := r.URL.Query().Get("page_size"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 32); err == nil && n > 0 {
			pageSize = int32(n)
		}
	}
	return page, pageSize
}

func (h *FinanceHandler) AddIncome(w http.ResponseWriter, r *http.Request) {
	var income domain.Income
	if err := decodeBody(r, &income); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := h.financeSvc.AddIncome(r.Context(), &income); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, income)
}

func (h *FinanceHandler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(r)
	if !ok {
		respondBadRequest(w, "invalid date range, expected YYYY-MM-DD")
		return
	}
	page, pageSize := pagination(r)
	incomes, total, err := h.financeSvc.ListIncomes(r.Context(), from, to, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"incomes": incomes,
		"total":   total,
		"page":    page,
	})
}

func (h *FinanceHandler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["incomeID"], 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid income id")
		return
	}
	var income domain.Income
	if err := decodeBody(r, &income); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	income.ID = id
	if err := h.financeSvc.UpdateIncome(r.Context(), &income); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, income)
}

func (h *FinanceHandler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["incomeID"], 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid income id")
		return
	}
	if err := h.financeSvc.DeleteIncome(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *FinanceHandler) IncomeSummary(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(r)
	if !ok {
		respondBadRequest(w, "invalid date range, expected YYYY-MM-DD")
		return
	}
	summary, err := h.financeSvc.IncomeSummary(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *FinanceHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var expense domain.Expense
	if err := decodeBody(r, &expense); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := h.financeSvc.AddExpense(r.Context(), &expense); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (h *FinanceHandler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(r)
	if !ok {
		respondBadRequest(w, "invalid date range, expected YYYY-MM-DD")
		return
	}
	page, pageSize := pagination(r)
	expenses, total, err := h.financeSvc.ListExpenses(r.Context(), from, to, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"expenses": expenses,
		"total":    total,
		"page":     page,
	})
}

func (h *FinanceHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["expenseID"], 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid expense id")
		return
	}
	var expense domain.Expense
	if err := decodeBody(r, &expense); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	expense.ID = id
	if err := h.financeSvc.UpdateExpense(r.Context(), &expense); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (h *FinanceHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["expenseID"], 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid expense id")
		return
	}
	if err := h.financeSvc.DeleteExpense(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *FinanceHandler) SavePeriodBalance(w http.ResponseWriter, r *http.Request) {
	var balance domain.PeriodBalance
	if err := decodeBody(r, &balance); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := h.financeSvc.SavePeriodBalance(r.Context(), &balance); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balance)
}

func (h *FinanceHandler) LastPeriodBalance(w http.ResponseWriter, r *http.Request) {
	before := r.URL.Query().Get("before")
	if before == "" {
		respondBadRequest(w, "before parameter is required")
		return
	}
	parsed, err := time.Parse("2006-01-02", before)
	if err != nil {
		respondBadRequest(w, "invalid before date, expected YYYY-MM-DD")
		return
	}
	balance, svcErr := h.financeSvc.LastPeriodBalance(r.Context(), parsed)
	if svcErr != nil {
		respondError(w, svcErr)
		return
	}
	respondJSON(w, http.StatusOK, balance)
}

func (h *FinanceHandler) ListPeriodBalances(w http.ResponseWriter, r *http.Request) {
	limit := int32(0)
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 32); err == nil && n > 0 {
			limit = int32(n)
		}
	}
	balances, err := h.financeSvc.ListPeriodBalances(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, balances)
}

func (h *FinanceHandler) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	from, to, ok := dateRange(r)
	if !ok {
		respondBadRequest(w, "invalid date range, expected YYYY-MM-DD")
		return
	}
	summary, err := h.financeSvc.ExpenseSummary(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
