package model

// Gender selects the constant term of the Mifflin-St Jeor equation.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ActivityLevel maps onto a TDEE multiplier.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityVeryActive ActivityLevel = "very-active"
)

// MealType categorizes an entry within a day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// UserProfile is the root per-user document. The identifier is minted once at
// registration and is the sole join key into the day-log collection.
type UserProfile struct {
	ID             string        `json:"id"`
	Email          string        `json:"email"`
	Name           string        `json:"name"`
	Height         float64       `json:"height"` // cm
	Weight         float64       `json:"weight"` // kg
	Age            int           `json:"age"`
	Gender         Gender        `json:"gender"`
	ActivityLevel  ActivityLevel `json:"activityLevel"`
	TargetCalories int           `json:"targetCalories"`
	TargetProtein  int           `json:"targetProtein"`
	TargetCarbs    int           `json:"targetCarbs"`
	TargetFat      int           `json:"targetFat"`
	IsOnboarded    bool          `json:"isOnboarded"`
}

// Credential links an email to its password and user identifier.
// Stored keyed by email; immutable after registration.
type Credential struct {
	Password string `json:"password"`
	UID      string `json:"uid"`
}

// FoodItem is one recognized food within a meal entry. It carries no
// identifier and is addressed positionally within its entry.
type FoodItem struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Weight   float64 `json:"weight"` // grams
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MealEntry is one logged meal. TotalCalories is a snapshot computed at
// creation time, not a live aggregate over Items.
type MealEntry struct {
	ID            string     `json:"id"`
	Timestamp     int64      `json:"timestamp"` // Unix milliseconds
	MealType      MealType   `json:"mealType"`
	Items         []FoodItem `json:"items"`
	TotalCalories int        `json:"totalCalories"`
	Image         string     `json:"image,omitempty"` // base64 payload
}

// DayLog holds the ordered meal entries for one user on one calendar date.
// At most one DayLog exists per (date, userId) pair; an empty Entries slice
// is valid and distinct from a missing log.
type DayLog struct {
	Date    string      `json:"date"` // YYYY-MM-DD
	UserID  string      `json:"userId"`
	Entries []MealEntry `json:"entries"`
}

// Snapshot is the portable backup document: every profile keyed by
// identifier (credentials excluded) plus the flat day-log sequence.
type Snapshot struct {
	Users map[string]UserProfile `json:"users"`
	Logs  []DayLog               `json:"logs"`
}

// MacroTargets are the computed daily nutrition goals.
type MacroTargets struct {
	Calories int `json:"targetCalories"`
	Protein  int `json:"targetProtein"`
	Fat      int `json:"targetFat"`
	Carbs    int `json:"targetCarbs"`
}

// DayTotals aggregates consumed macros for one calendar date.
type DayTotals struct {
	Date     string  `json:"date"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
