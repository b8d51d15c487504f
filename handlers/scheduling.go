package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agendly/models"
	"agendly/services/scheduling"
	"agendly/utils"
)

// SchedulingHandler exposes the scheduling engine over HTTP.
type SchedulingHandler struct {
	Engine *scheduling.Engine
	Logger *zap.Logger
}

func NewSchedulingHandler(engine *scheduling.Engine, logger *zap.Logger) *SchedulingHandler {
	return &SchedulingHandler{Engine: engine, Logger: logger}
}

// schedulingResponse is the outward form of a committed scheduling, with
// wall-clock times alongside the raw minute offsets.
type schedulingResponse struct {
	models.Scheduling
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toSchedulingResponse(s models.Scheduling) schedulingResponse {
	return schedulingResponse{
		Scheduling: s,
		StartTime:  scheduling.FormatClock(s.Start),
		EndTime:    scheduling.FormatClock(s.End),
	}
}

// GetAvailableSlots returns the 1-based ordered slot mapping for a worker,
// date and appointment set. Malformed input and empty days both answer with
// an empty object; only infrastructure failures become errors.
func (h *SchedulingHandler) GetAvailableSlots(c *gin.Context) {
	tenantID := c.Query("tenant_id")
	workerID := c.Query("worker_id")
	date := c.Query("date")
	var appointmentIDs []string
	if raw := c.Query("appointment_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				appointmentIDs = append(appointmentIDs, id)
			}
		}
	}

	if tenantID == "" || workerID == "" {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	slots, err := h.Engine.GetAvailableSlots(c.Request.Context(), tenantID, workerID, date, appointmentIDs)
	if err != nil {
		if scheduling.CodeOf(err) == scheduling.CodeInvalidInput {
			c.JSON(http.StatusOK, gin.H{})
			return
		}
		h.Logger.Error("failed to compute available slots",
			zap.String("workerID", workerID), zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "", "failed to compute available slots")
		return
	}

	c.JSON(http.StatusOK, slots)
}

type createSchedulingInput struct {
	TenantID       string   `json:"tenant_id" binding:"required"`
	WorkerID       string   `json:"worker_id" binding:"required"`
	ClientID       string   `json:"client_id" binding:"required"`
	AppointmentIDs []string `json:"appointment_ids" binding:"required"`
	Date           string   `json:"date" binding:"required"`
	StartTime      string   `json:"start_time" binding:"required"`
	Notes          string   `json:"notes"`
}

// CreateScheduling commits a booking. The engine re-validates the requested
// start under the worker lock; this handler only translates errors.
func (h *SchedulingHandler) CreateScheduling(c *gin.Context) {
	var input createSchedulingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, err.Error())
		return
	}

	created, err := h.Engine.CreateScheduling(c.Request.Context(), scheduling.CreateRequest{
		TenantID:       input.TenantID,
		WorkerID:       input.WorkerID,
		ClientID:       input.ClientID,
		AppointmentIDs: input.AppointmentIDs,
		Date:           input.Date,
		StartTime:      input.StartTime,
		Notes:          input.Notes,
	})
	if err != nil {
		switch scheduling.CodeOf(err) {
		case scheduling.CodeInvalidInput:
			utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, err.Error())
		case scheduling.CodeSlotUnavailable:
			utils.JSONError(c, http.StatusConflict, scheduling.CodeSlotUnavailable, err.Error())
		case scheduling.CodeLockUnavailable:
			utils.JSONError(c, http.StatusServiceUnavailable, scheduling.CodeLockUnavailable, err.Error())
		default:
			h.Logger.Error("scheduling commit failed",
				zap.String("workerID", input.WorkerID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "", "failed to create scheduling")
		}
		return
	}

	c.JSON(http.StatusCreated, toSchedulingResponse(*created))
}

// ListSchedulings returns a worker's schedulings for one date.
func (h *SchedulingHandler) ListSchedulings(c *gin.Context) {
	tenantID := c.Query("tenant_id")
	workerID := c.Query("worker_id")
	date := c.Query("date")
	if tenantID == "" || workerID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, "tenant_id, worker_id and date are required")
		return
	}

	schedulings, err := h.Engine.ListSchedulings(c.Request.Context(), tenantID, workerID, date)
	if err != nil {
		if scheduling.CodeOf(err) == scheduling.CodeInvalidInput {
			utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, err.Error())
			return
		}
		h.Logger.Error("failed to list schedulings", zap.String("workerID", workerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "", "failed to list schedulings")
		return
	}

	out := make([]schedulingResponse, 0, len(schedulings))
	for _, s := range schedulings {
		out = append(out, toSchedulingResponse(s))
	}
	c.JSON(http.StatusOK, gin.H{"schedulings": out})
}

// CancelScheduling marks a future scheduling cancelled.
func (h *SchedulingHandler) CancelScheduling(c *gin.Context) {
	tenantID := c.Query("tenant_id")
	schedulingID := c.Param("schedulingID")
	if tenantID == "" {
		utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, "tenant_id is required")
		return
	}

	if err := h.Engine.CancelScheduling(c.Request.Context(), tenantID, schedulingID); err != nil {
		utils.JSONError(c, http.StatusConflict, "", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": schedulingID})
}
