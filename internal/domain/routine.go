package domain

import "time"

// RoutineCandidate es una entrada del catalogo de rutinas.
type RoutineCandidate struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      *string   `json:"description,omitempty"`
	Level            Level     `json:"level"`
	Location         Location  `json:"location"`
	EstimatedMinutes *int      `json:"estimated_minutes,omitempty"`
	DaysPerWeek      int       `json:"days_per_week"`
	Objective        *string   `json:"objective,omitempty"`
	IsPublic         bool      `json:"is_public"`
	CreatedBy        *string   `json:"created_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// WorkoutLogEntry es una sesion pasada. El historial llega ordenado del mas reciente al mas antiguo.
type WorkoutLogEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	RoutineID       *string   `json:"routine_id,omitempty"`
	Date            time.Time `json:"date"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	CaloriesBurned  *int      `json:"calories_burned,omitempty"`
	PerceivedEffort *int      `json:"perceived_effort,omitempty"` // 1-5
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Recommendation es la salida del recomendador. Adjustment vacio significa sin ajuste de carga.
type Recommendation struct {
	Routine    RoutineCandidate `json:"routine"`
	Reason     string           `json:"reason"`
	Adjustment string           `json:"adjustment,omitempty"`
}
