package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"davefit/internal/domain"
	"davefit/internal/repository"
)

const birthDateLayout = "2006-01-02"

// ProfileService coordina reglas de negocio para el perfil del usuario.
type ProfileService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
	limiter  RateLimiter
	policy   RateLimitPolicy
}

func NewProfileService(logger *zap.Logger, profiles repository.ProfileRepository, limiter RateLimiter, policy RateLimitPolicy) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = NewFixedWindowLimiter()
	}
	if policy.Limit <= 0 || policy.Window <= 0 {
		policy = ProfileUpdateRateLimitPolicy
	}
	return &ProfileService{
		logger:   logger,
		profiles: profiles,
		limiter:  limiter,
		policy:   policy,
	}
}

// UpdateProfileInput llega como texto libre del formulario; se normaliza antes de guardar.
type UpdateProfileInput struct {
	FullName            *string
	BirthDate           *string
	Sex                 *string
	WeightKG            *float64
	HeightCM            *float64
	Goal                *string
	Level               *string
	Location            *string
	TrainingDaysPerWeek *float64
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	if s.profiles == nil {
		return domain.Profile{}, errors.New("profile service not configured")
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, ErrProfileNotFound
		}
		return domain.Profile{}, err
	}
	return profile, nil
}

// UpdateProfile aplica una actualizacion parcial limitada por cliente (por defecto 10/min).
func (s *ProfileService) UpdateProfile(ctx context.Context, identity domain.Identity, clientKey string, input UpdateProfileInput) (domain.Profile, error) {
	if s.profiles == nil {
		return domain.Profile{}, errors.New("profile service not configured")
	}

	if res := s.limiter.Check(ctx, "profile:"+clientKey, s.policy.Limit, s.policy.Window); !res.Allowed {
		s.logger.Warn("profile update rate limited", zap.String("client", clientKey))
		return domain.Profile{}, ErrRateLimited
	}

	if strings.TrimSpace(identity.ID) == "" {
		return domain.Profile{}, fmt.Errorf("%w: user id required", ErrInvalidProfile)
	}

	update, err := normalizeProfileUpdate(input)
	if err != nil {
		return domain.Profile{}, err
	}

	profile, err := s.profiles.Upsert(ctx, identity.ID, strings.TrimSpace(identity.Email), update)
	if err != nil {
		s.logger.Error("profile upsert failed", zap.Error(err), zap.String("user_id", identity.ID))
		return domain.Profile{}, err
	}
	return profile, nil
}

func normalizeProfileUpdate(input UpdateProfileInput) (repository.ProfileUpdate, error) {
	var update repository.ProfileUpdate

	update.FullName = trimmedOrNil(input.FullName)

	if raw := trimmedOrNil(input.BirthDate); raw != nil {
		birth, err := time.Parse(birthDateLayout, *raw)
		if err != nil {
			return repository.ProfileUpdate{}, fmt.Errorf("%w: birth_date must use YYYY-MM-DD", ErrInvalidProfile)
		}
		update.BirthDate = &birth
	}

	if raw := trimmedOrNil(input.Sex); raw != nil {
		sex := domain.ParseSex(*raw)
		if sex == domain.SexUnset {
			return repository.ProfileUpdate{}, fmt.Errorf("%w: sex must be one of: male, female, other", ErrInvalidProfile)
		}
		value := string(sex)
		update.Sex = &value
	}
	if raw := trimmedOrNil(input.Goal); raw != nil {
		goal := domain.ParseGoal(*raw)
		if goal == domain.GoalUnset {
			return repository.ProfileUpdate{}, fmt.Errorf("%w: goal must be one of: maintain, tone, gain_strength", ErrInvalidProfile)
		}
		value := string(goal)
		update.Goal = &value
	}
	if raw := trimmedOrNil(input.Level); raw != nil {
		level := domain.ParseLevel(*raw)
		if level == domain.LevelUnset {
			return repository.ProfileUpdate{}, fmt.Errorf("%w: level must be one of: beginner, intermediate, advanced", ErrInvalidProfile)
		}
		value := string(level)
		update.Level = &value
	}
	if raw := trimmedOrNil(input.Location); raw != nil {
		location := domain.ParseLocation(*raw)
		if location == domain.LocationUnset {
			return repository.ProfileUpdate{}, fmt.Errorf("%w: location must be one of: home, gym, both", ErrInvalidProfile)
		}
		value := string(location)
		update.Location = &value
	}

	if input.WeightKG != nil {
		if *input.WeightKG <= 0 || math.IsNaN(*input.WeightKG) {
			return repository.ProfileUpdate{}, fmt.Errorf("%w: weight_kg must be greater than 0", ErrInvalidProfile)
		}
		update.WeightKG = input.WeightKG
	}
	if input.HeightCM != nil {
		if *input.HeightCM <= 0 || math.IsNaN(*input.HeightCM) {
			return repository.ProfileUpdate{}, fmt.Errorf("%w: height_cm must be greater than 0", ErrInvalidProfile)
		}
		update.HeightCM = input.HeightCM
	}
	if input.TrainingDaysPerWeek != nil {
		if *input.TrainingDaysPerWeek < 0 || math.IsNaN(*input.TrainingDaysPerWeek) {
			return repository.ProfileUpdate{}, fmt.Errorf("%w: training_days_per_week must be 0 or greater", ErrInvalidProfile)
		}
		days := int(math.Floor(*input.TrainingDaysPerWeek))
		update.TrainingDaysPerWeek = &days
	}

	return update, nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
