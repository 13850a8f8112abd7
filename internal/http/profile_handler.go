package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"davefit/internal/service"
)

// ProfileHandler mantiene dependencias para endpoints de perfil.
type ProfileHandler struct {
	logger   *zap.Logger
	profiles *service.ProfileService
}

// NewProfileHandler crea una instancia de ProfileHandler.
func NewProfileHandler(logger *zap.Logger, profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		logger:   logger,
		profiles: profiles,
	}
}

// GetProfile maneja GET /me/profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("get profile failed", zap.Error(err), zap.String("user_id", identity.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile maneja PUT /me/profile.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	var req struct {
		FullName            *string  `json:"full_name"`
		BirthDate           *string  `json:"birth_date"`
		Sex                 *string  `json:"sex" binding:"omitempty,fitsex"`
		WeightKG            *float64 `json:"weight_kg" binding:"omitempty,gt=0"`
		HeightCM            *float64 `json:"height_cm" binding:"omitempty,gt=0"`
		Goal                *string  `json:"goal" binding:"omitempty,fitgoal"`
		Level               *string  `json:"level" binding:"omitempty,fitlevel"`
		Location            *string  `json:"location" binding:"omitempty,fitlocation"`
		TrainingDaysPerWeek *float64 `json:"training_days_per_week" binding:"omitempty,gte=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid profile update request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.profiles.UpdateProfile(c.Request.Context(), identity, clientKey(c), service.UpdateProfileInput{
		FullName:            req.FullName,
		BirthDate:           req.BirthDate,
		Sex:                 req.Sex,
		WeightKG:            req.WeightKG,
		HeightCM:            req.HeightCM,
		Goal:                req.Goal,
		Level:               req.Level,
		Location:            req.Location,
		TrainingDaysPerWeek: req.TrainingDaysPerWeek,
	})
	if err != nil {
		if errors.Is(err, service.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		if errors.Is(err, service.ErrInvalidProfile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("update profile failed", zap.Error(err), zap.String("user_id", identity.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
