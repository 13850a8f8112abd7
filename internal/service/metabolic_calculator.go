package service

import (
	"math"
	"time"

	"davefit/internal/domain"
)

const (
	minComputableAge = 10
	maxComputableAge = 100

	maleOffset   = 5.0
	femaleOffset = -161.0

	// Deficit/superavit fijo aplicado sobre el TDEE segun objetivo.
	goalCalorieDelta = 400

	bodyMassPlaceholder = "--"
)

// ActivityLevel agrupa los dias de entrenamiento semanales en tramos fijos.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// MetabolicCalculator calcula BMR, TDEE y objetivo calorico a partir del perfil.
// Nunca devuelve error: si faltan datos devuelve ok=false o un objetivo sin calorias.
type MetabolicCalculator struct {
	// Now permite fijar el reloj en tests. Nil usa time.Now.
	Now func() time.Time
}

// RestingExpenditure aplica Mifflin-St Jeor. Requiere peso, altura, nacimiento y sexo.
func (m MetabolicCalculator) RestingExpenditure(p domain.Profile) (int, bool) {
	weight, okWeight := positive(p.WeightKG)
	height, okHeight := positive(p.HeightCM)
	if !okWeight || !okHeight || p.BirthDate == nil || p.Sex == domain.SexUnset {
		return 0, false
	}

	age := ageOn(*p.BirthDate, m.now())
	if age < minComputableAge || age > maxComputableAge {
		return 0, false
	}

	bmr := 10*weight + 6.25*height - 5*float64(age) + sexOffset(p.Sex)
	return int(math.Round(bmr)), true
}

// DailyExpenditure multiplica el BMR por el factor de actividad segun dias por semana.
// El nivel declarado no influye: mandan los dias de entrenamiento.
func (m MetabolicCalculator) DailyExpenditure(p domain.Profile) (int, bool) {
	bmr, ok := m.RestingExpenditure(p)
	if !ok {
		return 0, false
	}
	factor := activityFactor(activityLevelForDays(p.TrainingDaysPerWeek))
	return int(math.Round(float64(bmr) * factor)), true
}

// CalorieTarget ajusta el TDEE segun el objetivo declarado.
func (m MetabolicCalculator) CalorieTarget(p domain.Profile) domain.CalorieTarget {
	tdee, ok := m.DailyExpenditure(p)
	if !ok {
		return domain.CalorieTarget{
			Calories:    nil,
			Category:    "Not computable",
			Description: "Complete your profile to calculate your calories",
		}
	}

	switch p.Goal {
	case domain.GoalMaintain:
		return calorieTarget(tdee, "Maintenance", "Keep your current weight")
	case domain.GoalTone:
		return calorieTarget(tdee-goalCalorieDelta, "Moderate deficit", "Moderate fat loss for definition")
	case domain.GoalGainStrength:
		return calorieTarget(tdee+goalCalorieDelta, "Caloric surplus", "Optimal muscle gain")
	case domain.GoalUnset:
	}
	return calorieTarget(tdee, "Maintenance", "Set a goal for a personalised calculation")
}

// ActivityDescriptor expone la tabla de factores para UI, sin pasar por el calculo completo.
// El nivel se acepta por compatibilidad pero hoy no altera el resultado.
func (MetabolicCalculator) ActivityDescriptor(_ domain.Level, daysPerWeek int) domain.ActivityDescriptor {
	level := activityLevelForDays(daysPerWeek)
	category, description := activityText(level)
	return domain.ActivityDescriptor{
		Category:    category,
		Factor:      activityFactor(level),
		Description: description,
	}
}

// BodyMassIndex devuelve peso / (altura en metros)^2.
func (MetabolicCalculator) BodyMassIndex(weightKG, heightCM *float64) (float64, bool) {
	weight, okWeight := positive(weightKG)
	height, okHeight := positive(heightCM)
	if !okWeight || !okHeight {
		return 0, false
	}
	meters := height / 100
	return weight / (meters * meters), true
}

// BodyMassIndexCategory clasifica el IMC en tramos fijos. Un IMC no positivo se trata como no calculable.
func (MetabolicCalculator) BodyMassIndexCategory(bmi float64) string {
	switch {
	case math.IsNaN(bmi) || bmi <= 0:
		return bodyMassPlaceholder
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}

// Summary junta todas las cifras del perfil en una sola estructura para la capa HTTP.
func (m MetabolicCalculator) Summary(p domain.Profile) domain.NutritionSummary {
	summary := domain.NutritionSummary{
		Target:           m.CalorieTarget(p),
		Activity:         m.ActivityDescriptor(p.Level, p.TrainingDaysPerWeek),
		BodyMassCategory: bodyMassPlaceholder,
	}
	if bmr, ok := m.RestingExpenditure(p); ok {
		summary.RestingExpenditure = &bmr
	}
	if tdee, ok := m.DailyExpenditure(p); ok {
		summary.DailyExpenditure = &tdee
	}
	if bmi, ok := m.BodyMassIndex(p.WeightKG, p.HeightCM); ok {
		summary.BodyMassIndex = &bmi
		summary.BodyMassCategory = m.BodyMassIndexCategory(bmi)
	}
	return summary
}

func (m MetabolicCalculator) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

func activityLevelForDays(days int) ActivityLevel {
	switch {
	case days <= 1:
		return ActivitySedentary
	case days <= 3:
		return ActivityLight
	case days <= 5:
		return ActivityModerate
	case days <= 7:
		return ActivityActive
	default:
		return ActivityVeryActive
	}
}

func activityFactor(level ActivityLevel) float64 {
	switch level {
	case ActivitySedentary:
		return 1.2
	case ActivityLight:
		return 1.375
	case ActivityModerate:
		return 1.55
	case ActivityActive:
		return 1.725
	case ActivityVeryActive:
		return 1.9
	}
	return 1.2
}

func activityText(level ActivityLevel) (string, string) {
	switch level {
	case ActivitySedentary:
		return "Sedentary", "Little or no exercise"
	case ActivityLight:
		return "Light", "1-3 days/week"
	case ActivityModerate:
		return "Moderate", "3-5 days/week"
	case ActivityActive:
		return "Active", "6-7 days/week"
	case ActivityVeryActive:
		return "Very active", "Intense daily training"
	}
	return "Sedentary", "Little or no exercise"
}

func sexOffset(sex domain.Sex) float64 {
	switch sex {
	case domain.SexMale:
		return maleOffset
	case domain.SexFemale:
		return femaleOffset
	case domain.SexOther, domain.SexUnset:
	}
	// Cualquier otra categoria usa la media de ambos offsets.
	return (maleOffset + femaleOffset) / 2
}

// ageOn devuelve los anios cumplidos en now, restando uno si aun no llego el cumpleanios.
func ageOn(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func calorieTarget(calories int, category, description string) domain.CalorieTarget {
	return domain.CalorieTarget{
		Calories:    &calories,
		Category:    category,
		Description: description,
	}
}

func positive(value *float64) (float64, bool) {
	if value == nil || math.IsNaN(*value) || *value <= 0 {
		return 0, false
	}
	return *value, true
}
