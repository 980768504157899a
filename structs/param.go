package structs

// Constraints is the per-request ConstraintSet. Form bounds mirror the
// slider ranges of the recommend page.
type Constraints struct {
	Meal        string `json:"meal" form:"meal" binding:"oneof=suhoor iftar either"`
	CaloriesMax int    `json:"calories_max" form:"calories_max" binding:"min=100,max=2000"`
	ProteinMin  int    `json:"protein_min" form:"protein_min" binding:"min=0,max=200"`
	SodiumMax   int    `json:"sodium_max" form:"sodium_max" binding:"min=0,max=6000"`
	TopN        int    `json:"top_n" form:"top_n" binding:"min=1,max=20"`
}

// DefaultConstraints are the initial slider positions.
func DefaultConstraints() Constraints {
	return Constraints{
		Meal:        "suhoor",
		CaloriesMax: 700,
		ProteinMin:  20,
		SodiumMax:   1200,
		TopN:        10,
	}
}

type LoginParam struct {
	Username string `json:"username" form:"username"`
}

type RecommendParam struct {
	Username string `json:"username"`
	Constraints
}

type RecommendQueueParam struct {
	Username    string      `json:"username"`
	Constraints Constraints `json:"constraints"`
	TaskID      uint        `json:"task_id"`
	QueueType   string      `json:"queue_type"`
	Result      string      `json:"result"`
}
