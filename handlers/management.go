package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	schedulingRepo "agendly/database/repository/scheduling"
	"agendly/models"
	"agendly/services/scheduling"
	"agendly/utils"
)

// ManagementHandler covers the tenant-facing configuration surface: weekly
// availability, overlap tolerance and the appointment catalog.
type ManagementHandler struct {
	Engine *scheduling.Engine
	Repo   schedulingRepo.SchedulingRepository
	Logger *zap.Logger
}

func NewManagementHandler(engine *scheduling.Engine, repo schedulingRepo.SchedulingRepository, logger *zap.Logger) *ManagementHandler {
	return &ManagementHandler{Engine: engine, Repo: repo, Logger: logger}
}

type setAvailabilityInput struct {
	TenantID string                `json:"tenant_id" binding:"required"`
	WorkerID string                `json:"worker_id" binding:"required"`
	Days     [7][]models.TimeRange `json:"days"`
}

// SetAvailability replaces a worker's weekly pattern.
func (h *ManagementHandler) SetAvailability(c *gin.Context) {
	var input setAvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, err.Error())
		return
	}

	err := h.Engine.SetWeeklyAvailability(c.Request.Context(), input.TenantID, input.WorkerID, input.Days)
	if err != nil {
		if scheduling.CodeOf(err) == scheduling.CodeInvalidInput {
			utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, err.Error())
			return
		}
		h.Logger.Error("failed to store availability", zap.String("workerID", input.WorkerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "", "failed to store availability")
		return
	}
	c.JSON(http.StatusOK, gin.H{"worker_id": input.WorkerID})
}

type setConfigInput struct {
	TenantID         string `json:"tenant_id" binding:"required"`
	OverlapTolerance int    `json:"overlap_tolerance"`
}

// SetConfig stores the tenant's overlap tolerance.
func (h *ManagementHandler) SetConfig(c *gin.Context) {
	var input setConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, err.Error())
		return
	}

	err := h.Engine.SetOverlapTolerance(c.Request.Context(), input.TenantID, input.OverlapTolerance)
	if err != nil {
		if scheduling.CodeOf(err) == scheduling.CodeInvalidInput {
			utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, err.Error())
			return
		}
		h.Logger.Error("failed to store scheduling config", zap.String("tenantID", input.TenantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "", "failed to store scheduling config")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tenant_id": input.TenantID})
}

type createWorkerInput struct {
	TenantID string `json:"tenant_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
}

// CreateWorker registers a bookable worker in the tenant.
func (h *ManagementHandler) CreateWorker(c *gin.Context) {
	var input createWorkerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, err.Error())
		return
	}

	now := time.Now()
	worker := &models.Worker{
		ID:        uuid.New().String(),
		TenantID:  input.TenantID,
		Name:      input.Name,
		Email:     input.Email,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Repo.CreateWorker(c.Request.Context(), worker); err != nil {
		h.Logger.Error("failed to create worker", zap.String("tenantID", input.TenantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "", "failed to create worker")
		return
	}
	c.JSON(http.StatusCreated, worker)
}

type createAppointmentInput struct {
	TenantID    string  `json:"tenant_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"required"`
	Price       float64 `json:"price"`
}

// CreateAppointment adds an appointment type to the tenant's catalog.
func (h *ManagementHandler) CreateAppointment(c *gin.Context) {
	var input createAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, err.Error())
		return
	}
	if input.Duration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, scheduling.CodeInvalidInput, "duration must be positive")
		return
	}

	now := time.Now()
	appointment := &models.Appointment{
		ID:          uuid.New().String(),
		TenantID:    input.TenantID,
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration,
		Price:       input.Price,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.Repo.CreateAppointment(c.Request.Context(), appointment); err != nil {
		h.Logger.Error("failed to create appointment", zap.String("tenantID", input.TenantID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "", "failed to create appointment")
		return
	}
	c.JSON(http.StatusCreated, appointment)
}
