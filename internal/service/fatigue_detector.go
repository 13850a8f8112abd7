package service

import (
	"time"

	"davefit/internal/domain"
)

// Puntuaciones posibles del detector de fatiga.
const (
	FatigueDecondition  = -5
	FatigueNeutral      = 0
	FatigueResidual     = 7
	FatigueTrainedToday = 10

	defaultPerceivedEffort = 3
)

// FatigueDetector estima la fatiga a partir del historial reciente.
// Es una heuristica: solo mira la sesion mas reciente, no la ventana completa.
type FatigueDetector struct {
	// Now permite fijar el reloj en tests. Nil usa time.Now.
	Now func() time.Time
}

// Detect asume historial ordenado del mas reciente al mas antiguo; no lo verifica.
func (d FatigueDetector) Detect(history []domain.WorkoutLogEntry) int {
	if len(history) == 0 {
		return FatigueNeutral
	}

	last := history[0]
	if last.Date.IsZero() {
		return FatigueNeutral
	}

	diffDays := daysBetween(last.Date, d.now())
	// Fuera de 1-5 (incluido 0) se toma como no informado.
	effort := defaultPerceivedEffort
	if e := last.PerceivedEffort; e != nil && *e >= 1 && *e <= 5 {
		effort = *e
	}

	switch {
	case diffDays == 0:
		// Ya entreno hoy.
		return FatigueTrainedToday
	case diffDays == 1 && effort <= 2:
		return FatigueResidual
	case diffDays > 3:
		// Descansado de mas, conviene retomar.
		return FatigueDecondition
	default:
		return FatigueNeutral
	}
}

func (d FatigueDetector) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// daysBetween cuenta dias de calendario (UTC) entre from y to.
func daysBetween(from, to time.Time) int {
	from = from.UTC()
	to = to.UTC()
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
