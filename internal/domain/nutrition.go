package domain

// CalorieTarget es el objetivo calorico diario. Calories nil significa "no calculable".
type CalorieTarget struct {
	Calories    *int   `json:"calories"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Computable indica si el perfil tenia datos suficientes.
func (t CalorieTarget) Computable() bool {
	return t.Calories != nil
}

// ActivityDescriptor describe el factor de actividad para mostrar en UI.
type ActivityDescriptor struct {
	Category    string  `json:"category"`
	Factor      float64 `json:"factor"`
	Description string  `json:"description"`
}

// FocusArea es un grupo de trabajo priorizado por el objetivo.
type FocusArea string

const (
	FocusCardio   FocusArea = "cardio"
	FocusFullBody FocusArea = "full_body"
	FocusHIIT     FocusArea = "hiit"
	FocusLegs     FocusArea = "legs"
	FocusChest    FocusArea = "chest"
	FocusBack     FocusArea = "back"
	FocusStrength FocusArea = "strength"
)

// Intensity es la intensidad objetivo derivada del objetivo declarado.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityMedium   Intensity = "medium"
	IntensityHigh     Intensity = "high"
	IntensityVeryHigh Intensity = "very_high"
)

type GoalPriorities struct {
	Focus     []FocusArea `json:"focus"`
	Intensity Intensity   `json:"intensity"`
}

// NutritionSummary agrupa todas las cifras del calculador para un perfil.
type NutritionSummary struct {
	RestingExpenditure *int               `json:"resting_expenditure"`
	DailyExpenditure   *int               `json:"daily_expenditure"`
	Target             CalorieTarget      `json:"target"`
	Activity           ActivityDescriptor `json:"activity"`
	BodyMassIndex      *float64           `json:"body_mass_index"`
	BodyMassCategory   string             `json:"body_mass_category"`
}
