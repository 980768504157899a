package structs

// MealResult is one rendered row of a recommendation. FinalScore carries the
// composite ranking score.
type MealResult struct {
	Title      string  `json:"title"`
	Kind       string  `json:"kind,omitempty"`
	MealSlot   string  `json:"meal_slot"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Fat        float64 `json:"fat"`
	Sodium     float64 `json:"sodium"`
	FinalScore float64 `json:"final_score"`
	Why        string  `json:"why"`
}

type RecommendResponse struct {
	Success     bool         `json:"success"`
	Notice      string       `json:"notice"`
	Message     string       `json:"message"`
	Username    string       `json:"username"`
	Constraints Constraints  `json:"constraints"`
	Results     []MealResult `json:"results"`
	Logged      bool         `json:"logged"`
	TaskID      uint         `json:"task_id,omitempty"`
}
