package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/gym-trial-backend/internal/auth"
	"github.com/nekogravitycat/gym-trial-backend/internal/file"
	filehttp "github.com/nekogravitycat/gym-trial-backend/internal/file/http"
	"github.com/nekogravitycat/gym-trial-backend/internal/gym"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/logging"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/request"
	"github.com/nekogravitycat/gym-trial-backend/internal/pkg/response"
	"github.com/nekogravitycat/gym-trial-backend/internal/trainer"
	trainerhttp "github.com/nekogravitycat/gym-trial-backend/internal/trainer/http"
)

type GymHandler struct {
	service        gym.Service
	trainerService trainer.Service
	fileService    file.Service
	fileHandler    *filehttp.Handler
	maxUploadBytes int64
}

func NewHandler(service gym.Service, trainerService trainer.Service, fileService file.Service, fileHandler *filehttp.Handler, maxUploadBytes int64) *GymHandler {
	return &GymHandler{
		service:        service,
		trainerService: trainerService,
		fileService:    fileService,
		fileHandler:    fileHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// List is public discovery with location, price and trial filters.
func (h *GymHandler) List(c *gin.Context) {
	var req ListGymsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	req.Normalize()

	gyms, total, err := h.service.List(c.Request.Context(), gym.Filter{
		Location: req.Location,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		HasTrial: req.HasTrial,
		OwnerID:  req.OwnerID,
		Skip:     req.Skip,
		Limit:    req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]GymResponse, len(gyms))
	for i, g := range gyms {
		items[i] = NewGymResponse(g)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Skip, req.Limit, total))
}

// Get returns one gym with its trainers.
func (h *GymHandler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	ctx := c.Request.Context()
	g, err := h.service.GetByID(ctx, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	trainers, err := h.trainerService.ListByGym(ctx, g.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, GymDetailResponse{
		GymResponse: NewGymResponse(g),
		Trainers:    trainerhttp.NewTrainerResponses(trainers),
	})
}

// Create lists a new gym. Gym owners and admins only.
func (h *GymHandler) Create(c *gin.Context) {
	var body CreateGymRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	identity, _ := auth.GetIdentity(c)
	g, err := h.service.Create(c.Request.Context(), identity, gym.CreateRequest{
		OwnerID:         body.OwnerID,
		Name:            body.Name,
		Address:         body.Address,
		SubscriptionFee: *body.SubscriptionFee,
		TrialAvailable:  body.TrialAvailable != nil && *body.TrialAvailable,
		Description:     body.Description,
		Latitude:        body.Latitude,
		Longitude:       body.Longitude,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewGymResponse(g))
}

// Update applies a partial update. Owner or admin only.
func (h *GymHandler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}
	var body UpdateGymRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	identity, _ := auth.GetIdentity(c)
	g, err := h.service.Update(c.Request.Context(), identity, uri.ID, gym.UpdateRequest{
		Name:            body.Name,
		Address:         body.Address,
		SubscriptionFee: body.SubscriptionFee,
		TrialAvailable:  body.TrialAvailable,
		Description:     body.Description,
		Latitude:        body.Latitude,
		Longitude:       body.Longitude,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewGymResponse(g))
}

func (h *GymHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	identity, _ := auth.GetIdentity(c)
	if err := h.service.Delete(c.Request.Context(), identity, uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadCover replaces the gym's cover image. The previous cover file is removed.
func (h *GymHandler) UploadCover(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	// Check permission before touching storage.
	identity, _ := auth.GetIdentity(c)
	current, err := h.service.GetForMutation(c.Request.Context(), identity, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.fileHandler.HandleFileUpload(c, filehttp.FileUploadConfig{
		MaxSizeBytes: h.maxUploadBytes,
		AllowedTypes: file.ImageContentTypes,
		ResizeImage:  true,
		AfterUpload: func(ctx context.Context, fileID string) error {
			if err := h.service.SetCover(ctx, identity, uri.ID, fileID); err != nil {
				return err
			}
			if current.CoverFileID != nil {
				if err := h.fileService.Delete(ctx, *current.CoverFileID); err != nil {
					logging.FromContext(ctx).Warn("delete previous cover failed", "file_id", *current.CoverFileID, "error", err)
				}
			}
			return nil
		},
	})
}
