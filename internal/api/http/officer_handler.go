package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/service"
)

type OfficerHandler struct {
	officerSvc service.OfficerService
}

func NewOfficerHandler(officerSvc service.OfficerService) *OfficerHandler {
	return &OfficerHandler{officerSvc: officerSvc}
}

type createOfficerRequest struct {
	MemberNo int32    `json:"member_no"`
	Name     string   `json:"name"`
	Roles    []string `json:"roles"`
	Area     string   `json:"area"`
	Password string   `json:"password"`
}

func (h *OfficerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOfficerRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	officer := &domain.Officer{
		MemberNo: req.MemberNo,
		Name:     req.Name,
		Roles:    req.Roles,
		Area:     req.Area,
	}
	if err := h.officerSvc.CreateOfficer(r.Context(), officer, req.Password); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, officer)
}

func officerIDVar(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["officerID"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (h *OfficerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := officerIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid officer id")
		return
	}
	officer, err := h.officerSvc.GetOfficer(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, officer)
}

func (h *OfficerHandler) List(w http.ResponseWriter, r *http.Request) {
	if role := r.URL.Query().Get("role"); role != "" {
		officers, err := h.officerSvc.ListOfficersByRole(r.Context(), role)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, officers)
		return
	}
	officers, err := h.officerSvc.ListOfficers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, officers)
}

func (h *OfficerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := officerIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid officer id")
		return
	}
	var officer domain.Officer
	if err := decodeBody(r, &officer); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	officer.ID = id
	if err := h.officerSvc.UpdateOfficer(r.Context(), &officer); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, officer)
}

func (h *OfficerHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := officerIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid officer id")
		return
	}
	if err := h.officerSvc.DeactivateOfficer(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}

func (h *OfficerHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := officerIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid officer id")
		return
	}
	if err := h.officerSvc.ReactivateOfficer(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reactivated"})
}

func (h *OfficerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := officerIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid officer id")
		return
	}
	if err := h.officerSvc.DeleteOfficer(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type areaRoleRequest struct {
	Role string `json:"role"`
	Area string `json:"area"`
}

func (h *OfficerHandler) AssignAreaRole(w http.ResponseWriter, r *http.Request) {
	id, ok := officerIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid officer id")
		return
	}
	var req areaRoleRequest
	if err := decodeBody(r, &req); err != nil || req.Role == "" {
		respondBadRequest(w, "role is required")
		return
	}
	if err := h.officerSvc.AssignAreaRole(r.Context(), id, req.Role, req.Area); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "assigned"})
}

func (h *OfficerHandler) RemoveAreaRole(w http.ResponseWriter, r *http.Request) {
	id, ok := officerIDVar(r)
	if !ok {
		respondBadRequest(w, "invalid officer id")
		return
	}
	role := mux.Vars(r)["role"]
	if role == "" {
		respondBadRequest(w, "role is required")
		return
	}
	if err := h.officerSvc.RemoveAreaRole(r.Context(), id, role); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
