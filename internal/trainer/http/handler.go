package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/gym-trial-backend/internal/auth"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/request"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/response"
	"github.com/nekogravitycat/gym-trial-backend/internal/trainer"
)

type TrainerHandler struct {
	service trainer.Service
}

func NewHandler(service trainer.Service) *TrainerHandler {
	return &TrainerHandler{service: service}
}

func (h *TrainerHandler) List(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	list, err := h.service.ListByGym(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": NewTrainerResponses(list)})
}

// Add is limited to the gym's owner and admins.
func (h *TrainerHandler) Add(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}
	var body AddTrainerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	identity, _ := auth.GetIdentity(c)
	t, err := h.service.Add(c.Request.Context(), identity, uri.ID, trainer.AddRequest{
		Name:      body.Name,
		Specialty: body.Specialty,
		Fee:       body.Fee,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTrainerResponse(t))
}

func (h *TrainerHandler) Remove(c *gin.Context) {
	var uri TrainerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	identity, _ := auth.GetIdentity(c)
	if err := h.service.Remove(c.Request.Context(), identity, uri.GymID, uri.TrainerID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
