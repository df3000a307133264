package domain

// SleepPlanInput is the small intake questionnaire for the sleep coach.
type SleepPlanInput struct {
	StressLevel int    `json:"stress_level"` // 1-10
	Caffeine    string `json:"caffeine"`     // e.g. "None", "Morning only", "Afternoon"
	Screens     string `json:"screens"`      // screen use before bed, e.g. "None", "Until bedtime"
	Bedtime     string `json:"bedtime"`      // "23:00"
}

// SleepPlanStep is one action of the wind-down ritual.
type SleepPlanStep struct {
	Offset      string `json:"offset"` // e.g. "90 minutes before bed"
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SleepPlan is a generated wind-down ritual for tonight.
type SleepPlan struct {
	Summary string          `json:"summary"`
	Steps   []SleepPlanStep `json:"steps"`
}
