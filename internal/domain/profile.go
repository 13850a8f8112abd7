package domain

import (
	"strings"
	"time"
)

// Sex selecciona el offset de la formula Mifflin-St Jeor.
type Sex string

const (
	SexUnset  Sex = ""
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

// Goal es el objetivo de entrenamiento declarado por el usuario.
type Goal string

const (
	GoalUnset        Goal = ""
	GoalMaintain     Goal = "maintain"
	GoalTone         Goal = "tone"
	GoalGainStrength Goal = "gain_strength"
)

// Level es el nivel de experiencia autodeclarado.
type Level string

const (
	LevelUnset        Level = ""
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Location es el lugar de entrenamiento. LocationBoth funciona como comodin.
type Location string

const (
	LocationUnset Location = ""
	LocationHome  Location = "home"
	LocationGym   Location = "gym"
	LocationBoth  Location = "both"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Profile es la ficha biometrica y de preferencias del usuario.
// Los punteros nil y los enums vacios significan "sin definir".
type Profile struct {
	ID                  string     `json:"id"`
	UserID              string     `json:"user_id"`
	Email               string     `json:"email"`
	FullName            *string    `json:"full_name,omitempty"`
	AvatarURL           *string    `json:"avatar_url,omitempty"`
	BirthDate           *time.Time `json:"birth_date,omitempty"`
	Sex                 Sex        `json:"sex,omitempty"`
	WeightKG            *float64   `json:"weight_kg,omitempty"`
	HeightCM            *float64   `json:"height_cm,omitempty"`
	Goal                Goal       `json:"goal,omitempty"`
	Level               Level      `json:"level,omitempty"`
	Location            Location   `json:"location,omitempty"`
	Role                string     `json:"role"`
	TrainingDaysPerWeek int        `json:"training_days_per_week"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// Valid indica si el valor pertenece al conjunto cerrado (el vacio no cuenta).
func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	case SexUnset:
		return false
	}
	return false
}

func (g Goal) Valid() bool {
	switch g {
	case GoalMaintain, GoalTone, GoalGainStrength:
		return true
	case GoalUnset:
		return false
	}
	return false
}

// Label devuelve el objetivo legible, p.ej. "gain strength".
func (g Goal) Label() string {
	return strings.ReplaceAll(string(g), "_", " ")
}

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	case LevelUnset:
		return false
	}
	return false
}

func (l Location) Valid() bool {
	switch l {
	case LocationHome, LocationGym, LocationBoth:
		return true
	case LocationUnset:
		return false
	}
	return false
}

// ParseSex normaliza texto libre; devuelve SexUnset si no reconoce el valor.
func ParseSex(raw string) Sex {
	s := Sex(normalizeTag(raw))
	if s.Valid() {
		return s
	}
	return SexUnset
}

func ParseGoal(raw string) Goal {
	g := Goal(normalizeTag(raw))
	if g.Valid() {
		return g
	}
	return GoalUnset
}

func ParseLevel(raw string) Level {
	l := Level(normalizeTag(raw))
	if l.Valid() {
		return l
	}
	return LevelUnset
}

func ParseLocation(raw string) Location {
	l := Location(normalizeTag(raw))
	if l.Valid() {
		return l
	}
	return LocationUnset
}

// UnmarshalText normaliza al decodificar JSON, igual que al leer de la base.
func (s *Sex) UnmarshalText(text []byte) error {
	*s = ParseSex(string(text))
	return nil
}

func (g *Goal) UnmarshalText(text []byte) error {
	*g = ParseGoal(string(text))
	return nil
}

func (l *Level) UnmarshalText(text []byte) error {
	*l = ParseLevel(string(text))
	return nil
}

func (l *Location) UnmarshalText(text []byte) error {
	*l = ParseLocation(string(text))
	return nil
}

func normalizeTag(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, " ", "_")
	value = strings.ReplaceAll(value, "-", "_")
	return value
}
