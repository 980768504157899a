package recommend

import (
	"fmt"
	"math"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/models"
	"ramadan-meal-recommender/services/dataset"
	"ramadan-meal-recommender/structs"
	"reflect"
	"testing"
)

func meal(title string, calories, protein, sodium float64, slot string) models.MealRecord {
	return models.MealRecord{
		Title:      title,
		Calories:   calories,
		Protein:    protein,
		Sodium:     sodium,
		MealSlot:   slot,
		FinalScore: dataset.DefaultFinalScore(protein, sodium, 0),
	}
}

func positioned(records []models.MealRecord) []models.MealRecord {
	for i := range records {
		records[i].Position = i
	}
	return records
}

func TestRecommend_Scenario(t *testing.T) {
	table := dataset.NewTable(positioned([]models.MealRecord{
		meal("A", 500, 30, 500, enums.SlotSuhoor),
		meal("B", 900, 10, 2000, enums.SlotIftar),
	}), false)

	recs := Recommend(table, structs.Constraints{Meal: "suhoor", CaloriesMax: 700, ProteinMin: 20, SodiumMax: 1200, TopN: 5})
	if len(recs) != 1 || recs[0].Title != "A" {
		t.Fatalf("expected only A, got %+v", recs)
	}
}

func TestRecommend_EmptyWhenImpossible(t *testing.T) {
	table := dataset.NewTable([]models.MealRecord{meal("A", 500, 30, 500, enums.SlotEither)}, false)

	recs := Recommend(table, structs.Constraints{Meal: "either", CaloriesMax: 700, ProteinMin: 1000, SodiumMax: 1200, TopN: 5})
	if recs == nil || len(recs) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", recs)
	}
}

func TestRecommend_SlotFilter(t *testing.T) {
	table := dataset.NewTable(positioned([]models.MealRecord{
		meal("S", 500, 30, 500, enums.SlotSuhoor),
		meal("I", 500, 30, 500, enums.SlotIftar),
		meal("E", 500, 30, 500, enums.SlotEither),
	}), false)

	cases := []struct {
		meal string
		want []string
	}{
		{"suhoor", []string{"S", "E"}},
		{" IFTAR ", []string{"I", "E"}},
		{"either", []string{"S", "I", "E"}},
		{"brunch", []string{"S", "I", "E"}},
	}
	for _, tc := range cases {
		recs := Recommend(table, structs.Constraints{Meal: tc.meal, CaloriesMax: 700, ProteinMin: 0, SodiumMax: 1200, TopN: 10})
		var got []string
		for _, r := range recs {
			got = append(got, r.Title)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("meal %q: got %v, want %v", tc.meal, got, tc.want)
		}
	}
}

func TestRecommend_BoundsAndTopN(t *testing.T) {
	var records []models.MealRecord
	for i := 0; i < 40; i++ {
		records = append(records, meal(fmt.Sprintf("m%d", i), float64(100+i*40), float64(i*3), float64(i*100), enums.SlotEither))
	}
	table := dataset.NewTable(positioned(records), false)

	c := structs.Constraints{Meal: "either", CaloriesMax: 1000, ProteinMin: 15, SodiumMax: 2500, TopN: 7}
	recs := Recommend(table, c)
	if len(recs) > c.TopN {
		t.Fatalf("got %d rows, top_n %d", len(recs), c.TopN)
	}
	for i, r := range recs {
		if r.Calories > 1000 || r.Protein < 15 || r.Sodium > 2500 {
			t.Errorf("row violates bounds: %+v", r)
		}
		if i > 0 && recs[i-1].Score < r.Score {
			t.Errorf("not sorted at %d", i)
		}
	}

	again := Recommend(table, c)
	if !reflect.DeepEqual(recs, again) {
		t.Error("recommend is not idempotent")
	}
}

func TestCalorieFit(t *testing.T) {
	cases := []struct {
		calories float64
		max      int
		want     float64
	}{
		{700, 700, 1},
		{0, 700, 0},
		{350, 700, 0.5},
		{2000, 700, 0},
		{10, 0, 0},
		{0, 0, 1},
	}
	for _, tc := range cases {
		if got := CalorieFit(tc.calories, tc.max); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("CalorieFit(%v, %d) = %v, want %v", tc.calories, tc.max, got, tc.want)
		}
	}
}

func TestRecommend_CompositeScore(t *testing.T) {
	r := meal("A", 350, 30, 600, enums.SlotEither)
	table := dataset.NewTable([]models.MealRecord{r}, false)

	recs := Recommend(table, structs.Constraints{Meal: "either", CaloriesMax: 700, SodiumMax: 1200, TopN: 1})
	want := r.FinalScore + 0.6*0.5
	if len(recs) != 1 || math.Abs(recs[0].Score-want) > 1e-9 {
		t.Fatalf("score = %+v, want %v", recs, want)
	}
	if recs[0].Result().FinalScore != recs[0].Score {
		t.Error("rendered final score should be the composite score")
	}
}

func TestRecommend_TiesKeepRowOrder(t *testing.T) {
	table := dataset.NewTable(positioned([]models.MealRecord{
		meal("first", 500, 30, 500, enums.SlotEither),
		meal("second", 500, 30, 500, enums.SlotEither),
		meal("third", 500, 30, 500, enums.SlotEither),
	}), false)

	recs := Recommend(table, structs.Constraints{Meal: "either", CaloriesMax: 700, SodiumMax: 1200, TopN: 3})
	if Titles(recs) != "first | second | third" {
		t.Errorf("titles = %q", Titles(recs))
	}
}

func TestRecommend_KindCapBeforeTruncate(t *testing.T) {
	var records []models.MealRecord
	for _, kind := range []string{"soup", "salad"} {
		for i := 0; i < 8; i++ {
			r := meal(fmt.Sprintf("%s-%d", kind, i), 500, float64(20+i), 500, enums.SlotEither)
			r.Kind = kind
			records = append(records, r)
		}
	}
	table := dataset.NewTable(positioned(records), true)

	recs := Recommend(table, structs.Constraints{Meal: "either", CaloriesMax: 700, SodiumMax: 1200, TopN: 4})
	if len(recs) != 2 {
		t.Fatalf("expected one row per kind, got %d: %s", len(recs), Titles(recs))
	}
	if Titles(recs) != "soup-7 | salad-7" {
		t.Errorf("titles = %q", Titles(recs))
	}
}

func TestRecommend_BlankKindIsItsOwnGroup(t *testing.T) {
	a := meal("kindless-a", 500, 40, 500, enums.SlotEither)
	b := meal("kindless-b", 500, 39, 500, enums.SlotEither)
	c := meal("soup", 500, 10, 500, enums.SlotEither)
	c.Kind = "soup"
	table := dataset.NewTable(positioned([]models.MealRecord{a, b, c}), true)

	recs := Recommend(table, structs.Constraints{Meal: "either", CaloriesMax: 700, SodiumMax: 1200, TopN: 8})
	if Titles(recs) != "kindless-a | kindless-b | soup" {
		t.Errorf("titles = %q", Titles(recs))
	}
}

func TestPerKindCap(t *testing.T) {
	cases := map[int]int{1: 1, 3: 1, 4: 1, 8: 2, 10: 2, 20: 5}
	for topN, want := range cases {
		if got := PerKindCap(topN); got != want {
			t.Errorf("PerKindCap(%d) = %d, want %d", topN, got, want)
		}
	}
}
