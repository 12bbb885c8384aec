package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/lakkaru/eksath-samithiya-backend/internal/domain"
	"github.com/lakkaru/eksath-samithiya-backend/internal/service"
)

type MemberHandler struct {
	memberSvc service.MemberService
	duesSvc   service.DuesService
}

func NewMemberHandler(memberSvc service.MemberService, duesSvc service.DuesService) *MemberHandler {
	return &MemberHandler{memberSvc: memberSvc, duesSvc: duesSvc}
}

func memberNoVar(r *http.Request) (int32, bool) {
	no, err := strconv.ParseInt(mux.Vars(r)["memberNo"], 10, 32)
	if err != nil || no <= 0 {
		return 0, false
	}
	return int32(no), true
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var member domain.Member
	if err := decodeBody(r, &member); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := h.memberSvc.CreateMember(r.Context(), &member); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	no, ok := memberNoVar(r)
	if !ok {
		respondBadRequest(w, "invalid member number")
		return
	}
	member, err := h.memberSvc.GetMember(r.Context(), no)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	no, ok := memberNoVar(r)
	if !ok {
		respondBadRequest(w, "invalid member number")
		return
	}
	var member domain.Member
	if err := decodeBody(r, &member); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	member.MemberNo = no
	if err := h.memberSvc.UpdateMember(r.Context(), &member); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		members, err := h.memberSvc.SearchByName(r.Context(), name)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, members)
		return
	}
	if area := r.URL.Query().Get("area"); area != "" {
		members, err := h.memberSvc.SearchByArea(r.Context(), area)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, members)
		return
	}
	members, err := h.memberSvc.ListActiveMembers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	next, err := h.memberSvc.NextMemberNo(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int32{"next_member_no": next})
}

func (h *MemberHandler) Due(w http.ResponseWriter, r *http.Request) {
	no, ok := memberNoVar(r)
	if !ok {
		respondBadRequest(w, "invalid member number")
		return
	}
	due, err := h.duesSvc.MemberDue(r.Context(), no, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, due)
}

func (h *MemberHandler) SignSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := h.duesSvc.MeetingSignSheet(r.Context(), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sheet)
}

func (h *MemberHandler) Fines(w http.ResponseWriter, r *http.Request) {
	no, ok := memberNoVar(r)
	if !ok {
		respondBadRequest(w, "invalid member number")
		return
	}
	fines, err := h.memberSvc.Fines(r.Context(), no)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, fines)
}

func (h *MemberHandler) DeleteFine(w http.ResponseWriter, r *http.Request) {
	no, ok := memberNoVar(r)
	if !ok {
		respondBadRequest(w, "invalid member number")
		return
	}
	fineID, err := strconv.ParseInt(mux.Vars(r)["fineID"], 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid fine id")
		return
	}
	if err := h.memberSvc.DeleteFine(r.Context(), no, fineID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *MemberHandler) Family(w http.ResponseWriter, r *http.Request) {
	no, ok := memberNoVar(r)
	if !ok {
		respondBadRequest(w, "invalid member number")
		return
	}
	member, dependents, err := h.memberSvc.Family(r.Context(), no)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"member":     member,
		"dependents": dependents,
	})
}

func (h *MemberHandler) AddDependent(w http.ResponseWriter, r *http.Request) {
	no, ok := memberNoVar(r)
	if !ok {
		respondBadRequest(w, "invalid member number")
		return
	}
	var dep domain.Dependent
	if err := decodeBody(r, &dep); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if err := h.memberSvc.AddDependent(r.Context(), no, &dep); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dep)
}

type diedRequest struct {
	DiedOn string `json:"died_on"` // YYYY-MM-DD, today when omitted
}

func (h *MemberHandler) MarkDied(w http.ResponseWriter, r *http.Request) {
	no, ok := memberNoVar(r)
	if !ok {
		respondBadRequest(w, "invalid member number")
		return
	}
	var req diedRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	var diedOn time.Time
	if req.DiedOn != "" {
		parsed, err := time.Parse("2006-01-02", req.DiedOn)
		if err != nil {
			respondBadRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		diedOn = parsed
	}
	if err := h.memberSvc.MarkMemberDied(r.Context(), no, diedOn); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *MemberHandler) MarkDependentDied(w http.ResponseWriter, r *http.Request) {
	depID, err := strconv.ParseInt(mux.Vars(r)["dependentID"], 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid dependent id")
		return
	}
	var req diedRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	var diedOn time.Time
	if req.DiedOn != "" {
		parsed, err := time.Parse("2006-01-02", req.DiedOn)
		if err != nil {
			respondBadRequest(w, "invalid date, expected YYYY-MM-DD")
			return
		}
		diedOn = parsed
	}
	if err := h.memberSvc.MarkDependentDied(r.Context(), depID, diedOn); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
