package service

import "davefit/internal/domain"

// GoalProfiler traduce el objetivo declarado a areas de foco e intensidad.
type GoalProfiler struct{}

// Priorities nunca falla: un objetivo vacio o desconocido cae en fitness general de baja intensidad.
func (GoalProfiler) Priorities(goal domain.Goal) domain.GoalPriorities {
	switch goal {
	case domain.GoalMaintain:
		return domain.GoalPriorities{
			Focus:     []domain.FocusArea{domain.FocusCardio, domain.FocusFullBody},
			Intensity: domain.IntensityMedium,
		}
	case domain.GoalTone:
		return domain.GoalPriorities{
			Focus:     []domain.FocusArea{domain.FocusFullBody, domain.FocusHIIT, domain.FocusLegs},
			Intensity: domain.IntensityHigh,
		}
	case domain.GoalGainStrength:
		return domain.GoalPriorities{
			Focus:     []domain.FocusArea{domain.FocusChest, domain.FocusBack, domain.FocusLegs, domain.FocusStrength},
			Intensity: domain.IntensityVeryHigh,
		}
	case domain.GoalUnset:
	}
	return domain.GoalPriorities{
		Focus:     []domain.FocusArea{domain.FocusFullBody},
		Intensity: domain.IntensityLow,
	}
}
