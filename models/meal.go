package models

// MealRecord is one prepared row of the nutrition dataset.
type MealRecord struct {
	ID         int64   `gorm:"column:id;primary_key" json:"-"`
	Title      string  `gorm:"column:title" json:"title"`
	Calories   float64 `gorm:"column:calories" json:"calories"`
	Protein    float64 `gorm:"column:protein" json:"protein"`
	Fat        float64 `gorm:"column:fat" json:"fat"`
	Sodium     float64 `gorm:"column:sodium" json:"sodium"`
	MealSlot   string  `gorm:"column:meal_slot" json:"meal_slot"`
	Why        string  `gorm:"column:why" json:"why"`
	FinalScore float64 `gorm:"column:final_score" json:"final_score"`
	Kind       string  `gorm:"column:kind" json:"kind,omitempty"`
	Position   int     `gorm:"column:position" json:"-"`
}

// TableName sets the insert table name for this struct type
func (m *MealRecord) TableName() string {
	return "meal_records"
}
