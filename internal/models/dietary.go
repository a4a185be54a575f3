package models

import (
	"strings"

	"github.com/pageza/healthyrecipe/backend/internal/apperr"
)

// DietaryPreference is the closed set of diets a user can declare.
type DietaryPreference string

const (
	DietVegetarian    DietaryPreference = "VEGETARIAN"
	DietVegan         DietaryPreference = "VEGAN"
	DietGlutenFree    DietaryPreference = "GLUTEN_FREE"
	DietKeto          DietaryPreference = "KETO"
	DietPaleo         DietaryPreference = "PALEO"
	DietLowCarb       DietaryPreference = "LOW_CARB"
	DietLowFat        DietaryPreference = "LOW_FAT"
	DietDairyFree     DietaryPreference = "DAIRY_FREE"
	DietMediterranean DietaryPreference = "MEDITERRANEAN"
)

// DietaryPreferences lists every valid preference.
var DietaryPreferences = []DietaryPreference{
	DietVegetarian, DietVegan, DietGlutenFree, DietKeto, DietPaleo,
	DietLowCarb, DietLowFat, DietDairyFree, DietMediterranean,
}

// FitnessGoal is the optional goal a user trains for.
type FitnessGoal string

const (
	GoalWeightLoss     FitnessGoal = "WEIGHT_LOSS"
	GoalWeightGain     FitnessGoal = "WEIGHT_GAIN"
	GoalMuscleGain     FitnessGoal = "MUSCLE_GAIN"
	GoalMaintainWeight FitnessGoal = "MAINTAIN_WEIGHT"
	GoalGeneralHealth  FitnessGoal = "GENERAL_HEALTH"
)

// FitnessGoals lists every valid goal.
var FitnessGoals = []FitnessGoal{
	GoalWeightLoss, GoalWeightGain, GoalMuscleGain, GoalMaintainWeight, GoalGeneralHealth,
}

// ParseDietaryPreference accepts "gluten-free", "Gluten Free" or "GLUTEN_FREE".
func ParseDietaryPreference(raw string) (DietaryPreference, error) {
	return parseEnum("dietary preference", raw, DietaryPreferences)
}

// ParseDietaryPreferences parses a list and returns it as a normalized set.
func ParseDietaryPreferences(raw []string) (StringSet, error) {
	values := make([]string, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		p, err := ParseDietaryPreference(r)
		if err != nil {
			return nil, err
		}
		values = append(values, string(p))
	}
	return NewStringSet(values...), nil
}

// ParseFitnessGoal parses an optional fitness goal; blank input yields "".
func ParseFitnessGoal(raw string) (FitnessGoal, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return parseEnum("fitness goal", raw, FitnessGoals)
}

// normalizeEnum maps user input onto the SCREAMING_SNAKE form used in storage.
func normalizeEnum(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

func parseEnum[T ~string](what, raw string, valid []T) (T, error) {
	s := normalizeEnum(raw)
	for _, v := range valid {
		if string(v) == s {
			return v, nil
		}
	}
	var zero T
	return zero, apperr.InvalidInput("invalid %s: %q", what, raw)
}
