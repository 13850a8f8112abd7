package service

import (
	"fmt"

	"davefit/internal/domain"
)

const (
	// Por encima de este puntaje se priorizan rutinas de recuperacion.
	fatigueRecoveryThreshold = 5
	recoveryMaxMinutes       = 30
	maxRecommendations       = 3

	recoveryReason     = "Recent fatigue detected. This routine is lighter for active recovery."
	recoveryAdjustment = "Reduce loads by 20%"
)

// RoutineRecommender combina objetivo, fatiga y preferencias para elegir rutinas del catalogo.
type RoutineRecommender struct {
	Goals   GoalProfiler
	Fatigue FatigueDetector
}

// NewRoutineRecommender crea un recomendador con el detector de fatiga indicado.
func NewRoutineRecommender(fatigue FatigueDetector) RoutineRecommender {
	return RoutineRecommender{Fatigue: fatigue}
}

// Recommend nunca falla: catalogo vacio o sin coincidencias devuelve lista vacia.
func (r RoutineRecommender) Recommend(
	profile domain.Profile,
	candidates []domain.RoutineCandidate,
	history []domain.WorkoutLogEntry,
) []domain.Recommendation {
	priorities := r.Goals.Priorities(profile.Goal)
	fatigue := r.Fatigue.Detect(history)

	eligible := make([]domain.RoutineCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if levelAllowed(profile.Level, candidate.Level) && locationAllowed(profile.Location, candidate.Location) {
			eligible = append(eligible, candidate)
		}
	}

	// Con fatiga alta la seguridad pesa mas que el objetivo: se saltea el ranking normal.
	if fatigue > fatigueRecoveryThreshold {
		recs := make([]domain.Recommendation, 0, len(eligible))
		for _, candidate := range eligible {
			if !isShortRoutine(candidate) {
				continue
			}
			recs = append(recs, domain.Recommendation{
				Routine:    candidate,
				Reason:     recoveryReason,
				Adjustment: recoveryAdjustment,
			})
		}
		return recs
	}

	// TODO: puntuar por areas de foco cuando el catalogo tenga tags por rutina; hoy se respeta el orden del catalogo.
	if len(eligible) > maxRecommendations {
		eligible = eligible[:maxRecommendations]
	}
	recs := make([]domain.Recommendation, 0, len(eligible))
	for _, candidate := range eligible {
		recs = append(recs, domain.Recommendation{
			Routine: candidate,
			Reason:  goalReason(profile.Goal, priorities),
		})
	}
	return recs
}

// levelAllowed acepta el mismo nivel o principiante, que siempre es seguro.
func levelAllowed(profileLevel, routineLevel domain.Level) bool {
	return routineLevel == profileLevel || routineLevel == domain.LevelBeginner
}

func locationAllowed(preferred, required domain.Location) bool {
	return required == preferred || required == domain.LocationBoth || preferred == domain.LocationBoth
}

func isShortRoutine(candidate domain.RoutineCandidate) bool {
	return candidate.EstimatedMinutes != nil &&
		*candidate.EstimatedMinutes > 0 &&
		*candidate.EstimatedMinutes < recoveryMaxMinutes
}

func goalReason(goal domain.Goal, priorities domain.GoalPriorities) string {
	if goal == domain.GoalUnset {
		return fmt.Sprintf("Good general fitness option at %s intensity", intensityLabel(priorities.Intensity))
	}
	return fmt.Sprintf("Aligned with your goal of %s", goal.Label())
}

func intensityLabel(intensity domain.Intensity) string {
	switch intensity {
	case domain.IntensityLow:
		return "low"
	case domain.IntensityMedium:
		return "medium"
	case domain.IntensityHigh:
		return "high"
	case domain.IntensityVeryHigh:
		return "very high"
	}
	return string(intensity)
}
