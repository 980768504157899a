package recommend

import (
	"math"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/models"
	"ramadan-meal-recommender/services/dataset"
	"ramadan-meal-recommender/structs"
	"sort"
	"strings"
)

const calorieFitWeight = 0.6

// Recommendation is a dataset row that survived filtering, with its ranking
// terms attached.
type Recommendation struct {
	models.MealRecord
	CalorieFit float64
	Score      float64
}

// Result converts to the rendered row; the composite score is shown as the
// final score.
func (r Recommendation) Result() structs.MealResult {
	return structs.MealResult{
		Title:      r.Title,
		Kind:       r.Kind,
		MealSlot:   r.MealSlot,
		Calories:   r.Calories,
		Protein:    r.Protein,
		Fat:        r.Fat,
		Sodium:     r.Sodium,
		FinalScore: r.Score,
		Why:        r.Why,
	}
}

// Recommend filters, scores and ranks the table for one constraint set. It
// never mutates the table and returns an empty slice when nothing qualifies.
// Bounds are used literally; range checks belong to the caller.
func Recommend(table *dataset.Table, c structs.Constraints) []Recommendation {
	meal := strings.ToLower(strings.TrimSpace(c.Meal))
	slotFilter := meal == enums.SlotSuhoor || meal == enums.SlotIftar

	pool := make([]Recommendation, 0)
	for i := 0; i < table.Len(); i++ {
		r := table.At(i)
		if slotFilter && r.MealSlot != meal && r.MealSlot != enums.SlotEither {
			continue
		}
		if r.Calories > float64(c.CaloriesMax) || r.Protein < float64(c.ProteinMin) || r.Sodium > float64(c.SodiumMax) {
			continue
		}
		pool = append(pool, Recommendation{MealRecord: r})
	}
	if len(pool) == 0 || c.TopN <= 0 {
		return []Recommendation{}
	}

	for i := range pool {
		pool[i].CalorieFit = CalorieFit(pool[i].Calories, c.CaloriesMax)
		pool[i].Score = pool[i].FinalScore + calorieFitWeight*pool[i].CalorieFit
	}
	sortByScore(pool)

	if table.HasKind() {
		pool = diversify(pool, PerKindCap(c.TopN))
	}
	if len(pool) > c.TopN {
		pool = pool[:c.TopN]
	}
	return pool
}

// CalorieFit is 1 at the ceiling and falls off linearly with distance from it
// in either direction, clamped to [0, 1].
func CalorieFit(calories float64, caloriesMax int) float64 {
	denominator := math.Max(float64(caloriesMax), 1)
	fit := 1 - math.Abs(calories-float64(caloriesMax))/denominator
	return math.Min(math.Max(fit, 0), 1)
}

// PerKindCap is how many rows a single kind may contribute.
func PerKindCap(topN int) int {
	if topN/4 < 1 {
		return 1
	}
	return topN / 4
}

// Titles joins result titles the way the audit row stores them.
func Titles(recs []Recommendation) string {
	titles := make([]string, len(recs))
	for i, r := range recs {
		titles[i] = r.Title
	}
	return strings.Join(titles, " | ")
}

// Results converts a ranked slice to rendered rows.
func Results(recs []Recommendation) []structs.MealResult {
	out := make([]structs.MealResult, len(recs))
	for i, r := range recs {
		out[i] = r.Result()
	}
	return out
}

// diversify keeps the top perKind rows of every kind from an already sorted
// pool, then re-sorts what remains. Groups are visited in first-seen order.
// The result can be shorter than topN when few kinds qualify.
func diversify(sorted []Recommendation, perKind int) []Recommendation {
	var order []string
	groups := make(map[string][]Recommendation)
	for _, r := range sorted {
		if _, ok := groups[r.Kind]; !ok {
			order = append(order, r.Kind)
		}
		if len(groups[r.Kind]) < perKind {
			groups[r.Kind] = append(groups[r.Kind], r)
		}
	}

	out := make([]Recommendation, 0, len(order)*perKind)
	for _, kind := range order {
		out = append(out, groups[kind]...)
	}
	sortByScore(out)
	return out
}

// ties keep dataset row order
func sortByScore(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Position < recs[j].Position
	})
}
