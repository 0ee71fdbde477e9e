package schedule

import (
	"errors"
	"net/http"

	"SchedulingAPI/internal/timegrid"
	"SchedulingAPI/internal/v0/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the Service over HTTP
type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{svc: svc, log: log}
}

// CheckResult is the body of a dry-run conflict check.
type CheckResult struct {
	Conflict bool                    `json:"conflict"`
	Result   timegrid.ConflictResult `json:"result"`
}

// fail maps service errors onto status codes.
func (h *Handler) fail(c *gin.Context, err error) {
	var verr *timegrid.ValidationError
	var cerr *ConflictError
	switch {
	case errors.As(err, &verr):
		common.FailWithData(c, http.StatusBadRequest, verr, verr.Messages()...)
	case errors.As(err, &cerr):
		common.FailWithData(c, http.StatusConflict, cerr, cerr.Error())
	case errors.Is(err, ErrNotFound):
		common.Fail(c, http.StatusNotFound, "meeting not found")
	case errors.Is(err, timegrid.ErrInvalidDay), errors.Is(err, ErrInvalidStatus):
		common.Fail(c, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("requestId", common.RequestIDFrom(c)),
			zap.Error(err),
		)
		common.Fail(c, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) bindMeeting(c *gin.Context) (timegrid.Meeting, bool, bool) {
	var req MeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, bindingMessages(err)...)
		return timegrid.Meeting{}, false, false
	}
	m, err := req.toMeeting()
	if err != nil {
		h.fail(c, err)
		return timegrid.Meeting{}, false, false
	}
	return m, req.Override, true
}

func (h *Handler) PostMeeting(c *gin.Context) {
	m, override, ok := h.bindMeeting(c)
	if !ok {
		return
	}
	stored, err := h.svc.Submit(c.Request.Context(), m, override)
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusCreated, stored)
}

func (h *Handler) CheckMeeting(c *gin.Context) {
	m, _, ok := h.bindMeeting(c)
	if !ok {
		return
	}
	// Lets an edit be previewed without colliding with itself.
	m.ID = c.Query("exclude")

	res, err := h.svc.Check(c.Request.Context(), m)
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, CheckResult{Conflict: res.Found(), Result: res})
}

func (h *Handler) GetMeetings(c *gin.Context) {
	f := Filter{
		ClassroomID: c.Query("classroomId"),
		Professor:   c.Query("professor"),
		Section:     c.Query("section"),
	}
	if d := c.Query("day"); d != "" {
		day, err := timegrid.ParseDay(d)
		if err != nil {
			h.fail(c, err)
			return
		}
		f.Day = day
	}
	if st := c.Query("status"); st != "" {
		status, err := ParseStatus(st)
		if err != nil {
			h.fail(c, err)
			return
		}
		f.Status = status
	}

	meetings, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, meetings)
}

func (h *Handler) GetMeeting(c *gin.Context) {
	m, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, m)
}

func (h *Handler) PutMeeting(c *gin.Context) {
	m, override, ok := h.bindMeeting(c)
	if !ok {
		return
	}
	stored, err := h.svc.Update(c.Request.Context(), c.Param("id"), m, override)
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, stored)
}

func (h *Handler) DeleteMeeting(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

func (h *Handler) ApproveMeeting(c *gin.Context) {
	stored, err := h.svc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, stored)
}

// gridStatus reads the status query parameter, defaulting to approved.
func gridStatus(c *gin.Context) (Status, error) {
	st := c.Query("status")
	if st == "" {
		return StatusApproved, nil
	}
	return ParseStatus(st)
}

func (h *Handler) GetClassroomGrid(c *gin.Context) {
	status, err := gridStatus(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	grid, err := h.svc.ClassroomGrid(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, grid)
}

func (h *Handler) GetProfessorGrid(c *gin.Context) {
	status, err := gridStatus(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	grid, err := h.svc.ProfessorGrid(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, grid)
}

func (h *Handler) GetGrids(c *gin.Context) {
	status, err := gridStatus(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	grids, err := h.svc.AllGrids(c.Request.Context(), status)
	if err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, grids)
}

func (h *Handler) PostClassroom(c *gin.Context) {
	var room Classroom
	if err := c.ShouldBindJSON(&room); err != nil {
		common.Fail(c, http.StatusBadRequest, bindingMessages(err)...)
		return
	}
	if err := h.svc.PutClassroom(c.Request.Context(), room); err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusCreated, room)
}

func (h *Handler) PostProfessor(c *gin.Context) {
	var p Professor
	if err := c.ShouldBindJSON(&p); err != nil {
		common.Fail(c, http.StatusBadRequest, bindingMessages(err)...)
		return
	}
	if err := h.svc.PutProfessor(c.Request.Context(), p); err != nil {
		h.fail(c, err)
		return
	}
	common.Success(c, http.StatusCreated, p)
}

//   This project is the facility scheduling backend API for the OpenSourceDUTH team.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
