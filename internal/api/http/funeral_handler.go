package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/service"
)

type FuneralHandler struct {
	funeralSvc service.FuneralService
}

func NewFuneralHandler(funeralSvc service.FuneralService) *FuneralHandler {
	return &FuneralHandler{funeralSvc: funeralSvc}
}

func (h *FuneralHandler) Create(w http.ResponseWriter, r *http.Request) {
	var funeral domain.Funeral
	if err := decodeBody(r, &funeral); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := h.funeralSvc.CreateFuneral(r.Context(), &funeral); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, funeral)
}

func funeralIDVar(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["funeralID"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *FuneralHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := funeralIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid funeral id")
		return
	}
	funeral, err := h.funeralSvc.GetFuneral(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, funeral)
}

func (h *FuneralHandler) List(w http.ResponseWriter, r *http.Request) {
	var limit int32
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil || n < 0 {
			respondBadRequest(w, "invalid limit")
			return
		}
		limit = int32(n)
	}
	funerals, err := h.funeralSvc.ListFunerals(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, funerals)
}

func (h *FuneralHandler) ByDeceased(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["deceasedRef"]
	funeral, err := h.funeralSvc.FuneralByDeceased(r.Context(), ref)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, funeral)
}

func (h *FuneralHandler) LastAssignmentInfo(w http.ResponseWriter, r *http.Request) {
	anchor, removed, err := h.funeralSvc.LastAssignmentInfo(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"last_assigned_member": anchor,
		"removed_members":      removed,
	})
}

type absentsRequest struct {
	Absents []int32 `json:"absents"`
}

func (h *FuneralHandler) UpdateEventAbsents(w http.ResponseWriter, r *http.Request) {
	id, ok := funeralIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid funeral id")
		return
	}
	var req absentsRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	added, removed, err := h.funeralSvc.UpdateEventAbsents(r.Context(), id, req.Absents)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{
		"fines_added":   added,
		"fines_removed": removed,
	})
}

func (h *FuneralHandler) UpdateWorkAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := funeralIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid funeral id")
		return
	}
	var req absentsRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	added, removed, err := h.funeralSvc.UpdateWorkAttendance(r.Context(), id, req.Absents)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{
		"fines_added":   added,
		"fines_removed": removed,
	})
}

type extraDueRequest struct {
	MemberNo int32 `json:"member_no"`
	Amount   int64 `json:"amount"`
}

func (h *FuneralHandler) AddExtraDue(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["deceasedRef"]
	var req extraDueRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := h.funeralSvc.AddExtraDueFine(r.Context(), ref, req.MemberNo, req.Amount); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

func (h *FuneralHandler) ExtraDues(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["deceasedRef"]
	fines, err := h.funeralSvc.ExtraDueFines(r.Context(), ref)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fines)
}
