// Package nutrition computes daily macro targets from body metrics.
package nutrition

import (
	"math"

	"github.com/icalorie/icalorie-server/internal/model"
)

// activityMultipliers maps an activity level to its TDEE multiplier.
// Unknown levels fall back to sedentary.
var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:  1.2,
	model.ActivityLight:      1.375,
	model.ActivityModerate:   1.55,
	model.ActivityVeryActive: 1.725,
}

// Targets derives daily calorie and macro goals via Mifflin-St Jeor:
//
//	BMR = 10*weight + 6.25*height - 5*age + (male ? +5 : -161)
//
// scaled by the activity multiplier, then split 30% protein / 35% fat /
// 35% carbs using 4, 9 and 4 kcal per gram respectively. Each result is
// rounded half away from zero.
func Targets(weightKg, heightCm float64, age int, gender model.Gender, activity model.ActivityLevel) model.MacroTargets {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == model.GenderMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	mult, ok := activityMultipliers[activity]
	if !ok {
		mult = activityMultipliers[model.ActivitySedentary]
	}
	calories := math.Round(bmr * mult)

	return model.MacroTargets{
		Calories: int(calories),
		Protein:  int(math.Round(calories * 0.3 / 4)),
		Fat:      int(math.Round(calories * 0.35 / 9)),
		Carbs:    int(math.Round(calories * 0.35 / 4)),
	}
}
