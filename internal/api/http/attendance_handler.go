package http

import (
	"net/http"
	"time"

	"github.com/lakkaru/eksath-samithiya-backend/internal/service"
)

type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

type saveAttendanceRequest struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Absents []int32 `json:"absents"`
}

func (h *AttendanceHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveAttendanceRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondBadRequest(w, "invalid date, expected YYYY-MM-DD")
		return
	}
	meeting, err := h.attendanceSvc.SaveAttendance(r.Context(), date, req.Absents)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, meeting)
}

func (h *AttendanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	matrix, memberNos, err := h.attendanceSvc.GetAttendance(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"member_nos": memberNos,
		"meetings":   matrix,
	})
}
