package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"davefit/internal/domain"
	"davefit/internal/service"
)

// CoachHandler expone calculos nutricionales, recomendaciones e historial.
type CoachHandler struct {
	logger *zap.Logger
	coach  *service.CoachService
}

// NewCoachHandler crea una instancia de CoachHandler.
func NewCoachHandler(logger *zap.Logger, coach *service.CoachService) *CoachHandler {
	return &CoachHandler{
		logger: logger,
		coach:  coach,
	}
}

// GetNutrition maneja GET /me/nutrition.
func (h *CoachHandler) GetNutrition(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	summary, err := h.coach.NutritionFor(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("nutrition failed", zap.Error(err), zap.String("user_id", identity.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not calculate nutrition"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"nutrition": summary})
}

type previewRequest struct {
	BirthDate           *string  `json:"birth_date"`
	Sex                 *string  `json:"sex" binding:"omitempty,fitsex"`
	WeightKG            *float64 `json:"weight_kg" binding:"omitempty,gt=0"`
	HeightCM            *float64 `json:"height_cm" binding:"omitempty,gt=0"`
	Goal                *string  `json:"goal" binding:"omitempty,fitgoal"`
	Level               *string  `json:"level" binding:"omitempty,fitlevel"`
	TrainingDaysPerWeek *float64 `json:"training_days_per_week" binding:"omitempty,gte=0"`
}

// PreviewNutrition maneja POST /nutrition/calculate para perfiles aun no guardados.
func (h *CoachHandler) PreviewNutrition(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid nutrition preview request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile := domain.Profile{
		WeightKG: req.WeightKG,
		HeightCM: req.HeightCM,
	}
	if req.BirthDate != nil && strings.TrimSpace(*req.BirthDate) != "" {
		birth, err := time.Parse("2006-01-02", strings.TrimSpace(*req.BirthDate))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "birth_date must use YYYY-MM-DD"})
			return
		}
		profile.BirthDate = &birth
	}
	if req.Sex != nil {
		profile.Sex = domain.ParseSex(*req.Sex)
	}
	if req.Goal != nil {
		profile.Goal = domain.ParseGoal(*req.Goal)
	}
	if req.Level != nil {
		profile.Level = domain.ParseLevel(*req.Level)
	}
	if req.TrainingDaysPerWeek != nil {
		profile.TrainingDaysPerWeek = int(*req.TrainingDaysPerWeek)
	}

	c.JSON(http.StatusOK, gin.H{"nutrition": h.coach.Preview(profile)})
}

// GetRecommendations maneja GET /me/recommendations.
func (h *CoachHandler) GetRecommendations(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	recs, err := h.coach.RecommendationsFor(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		h.logger.Error("recommendations failed", zap.Error(err), zap.String("user_id", identity.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// LogWorkout maneja POST /me/workouts.
func (h *CoachHandler) LogWorkout(c *gin.Context) {
	identity, ok := GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
		return
	}

	var req struct {
		RoutineID       string     `json:"routine_id"`
		Date            *time.Time `json:"date"`
		DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,gte=0"`
		CaloriesBurned  *int       `json:"calories_burned" binding:"omitempty,gte=0"`
		PerceivedEffort *int       `json:"perceived_effort" binding:"omitempty,min=1,max=5"`
		Notes           string     `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid workout request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	entry, err := h.coach.LogWorkout(c.Request.Context(), identity.ID, service.LogWorkoutInput{
		RoutineID:       req.RoutineID,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		PerceivedEffort: req.PerceivedEffort,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidWorkout) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("log workout failed", zap.Error(err), zap.String("user_id", identity.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log workout"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"workout": entry})
}
