package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mellah-kais/cnam-server/internal/models"
	"github.com/mellah-kais/cnam-server/internal/services"
	"github.com/mellah-kais/cnam-server/internal/utils"
)

type SyncHandler struct {
	svc services.SyncService
}

func NewSyncHandler(svc services.SyncService) *SyncHandler {
	return &SyncHandler{svc: svc}
}

type syncPatientsRequest struct {
	Patients []models.Patient `json:"patients" binding:"required"`
}

type syncBulletinsRequest struct {
	Bulletins []models.Bulletin `json:"bulletins" binding:"required"`
}

type syncBordereauxRequest struct {
	Bordereaux []models.Bordereau `json:"bordereaux" binding:"required"`
}

func (h *SyncHandler) Patients(c *gin.Context) {
	dentistID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req syncPatientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SyncHandler.Patients", "invalid request body", err))
		return
	}

	if err := h.svc.SyncPatients(c.Request.Context(), dentistID, req.Patients); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Patients synced"})
}

func (h *SyncHandler) Bulletins(c *gin.Context) {
	dentistID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req syncBulletinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SyncHandler.Bulletins", "invalid request body", err))
		return
	}

	if err := h.svc.SyncBulletins(c.Request.Context(), dentistID, req.Bulletins); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bulletins synced"})
}

func (h *SyncHandler) Bordereaux(c *gin.Context) {
	dentistID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req syncBordereauxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SyncHandler.Bordereaux", "invalid request body", err))
		return
	}

	if err := h.svc.SyncBordereaux(c.Request.Context(), dentistID, req.Bordereaux); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Bordereaux synced"})
}
