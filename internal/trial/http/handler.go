package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/gym-trial-backend/internal/auth"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/request"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/response"
	"github.com/nekogravitycat/gym-trial-backend/internal/trial"
)

type TrialHandler struct {
	service trial.Service
}

func NewHandler(service trial.Service) *TrialHandler {
	return &TrialHandler{service: service}
}

// Create requests a trial session at a gym for the caller.
func (h *TrialHandler) Create(c *gin.Context) {
	var body CreateTrialRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	identity, _ := auth.GetIdentity(c)
	b, err := h.service.Create(c.Request.Context(), identity, trial.CreateRequest{
		GymID:       body.GymID,
		ScheduledAt: body.ScheduledAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTrialResponse(b))
}

// UpdateStatus accepts or rejects a pending request. Gym owner or admin only.
func (h *TrialHandler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}
	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	identity, _ := auth.GetIdentity(c)
	b, err := h.service.UpdateStatus(c.Request.Context(), identity, uri.ID, body.StatusUpdate)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTrialResponse(b))
}

func (h *TrialHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	identity, _ := auth.GetIdentity(c)
	b, err := h.service.Get(c.Request.Context(), identity, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTrialResponse(b))
}

// ListMine lists the caller's requests, newest first.
func (h *TrialHandler) ListMine(c *gin.Context) {
	var req ListTrialsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	req.Normalize()

	identity, _ := auth.GetIdentity(c)
	list, total, err := h.service.ListMine(c.Request.Context(), identity, trial.Filter{
		UserID: req.UserID,
		GymID:  req.GymID,
		Status: trial.Status(req.Status),
		Skip:   req.Skip,
		Limit:  req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(newTrialResponses(list), req.Skip, req.Limit, total))
}

// ListForGym lists requests made to one gym. Gym owner or admin only.
func (h *TrialHandler) ListForGym(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}
	var req ListTrialsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	req.Normalize()

	identity, _ := auth.GetIdentity(c)
	list, total, err := h.service.ListForGym(c.Request.Context(), identity, uri.ID, trial.Filter{
		Status: trial.Status(req.Status),
		Skip:   req.Skip,
		Limit:  req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewPageResponse(newTrialResponses(list), req.Skip, req.Limit, total))
}
