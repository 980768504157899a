package dataset

import (
	"fmt"
	"math"
	"ramadan-meal-recommender/enums"
	"ramadan-meal-recommender/models"
	"strconv"
	"strings"
)

// valid sanity range per nutrient, inclusive on both ends
var nutrientRanges = map[string][2]float64{
	enums.ColumnCalories: {1, 1993},
	enums.ColumnProtein:  {0, 200},
	enums.ColumnFat:      {0, 194},
	enums.ColumnSodium:   {0, 5980},
}

// MissingColumnError is returned by Prepare when a required column is absent.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("dataset is missing required column: %s", e.Column)
}

// Table is the prepared, read-only meal dataset.
type Table struct {
	records []models.MealRecord
	hasKind bool
}

// NewTable copies records into a Table.
func NewTable(records []models.MealRecord, hasKind bool) *Table {
	cp := make([]models.MealRecord, len(records))
	copy(cp, records)
	return &Table{records: cp, hasKind: hasKind}
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

func (t *Table) At(i int) models.MealRecord {
	return t.records[i]
}

// HasKind reports whether the source carried a kind column.
func (t *Table) HasKind() bool {
	return t != nil && t.hasKind
}

// Records returns a copy of every row.
func (t *Table) Records() []models.MealRecord {
	cp := make([]models.MealRecord, t.Len())
	if t != nil {
		copy(cp, t.records)
	}
	return cp
}

// Prepare validates and normalizes a raw table.
func Prepare(raw *Raw) (*Table, error) {
	idx := raw.columnIndex()
	for _, column := range enums.RequiredColumns {
		if _, ok := idx[column]; !ok {
			return nil, &MissingColumnError{Column: column}
		}
	}
	_, hasKind := idx[enums.ColumnKind]

	records := make([]models.MealRecord, 0, len(raw.Rows))
	for position, row := range raw.Rows {
		cell := func(column string) (string, bool) {
			j, ok := idx[column]
			if !ok || j >= len(row) {
				return "", ok
			}
			return strings.TrimSpace(row[j]), true
		}

		title, _ := cell(enums.ColumnTitle)
		if title == "" {
			continue
		}

		values := make(map[string]float64, len(nutrientRanges))
		keep := true
		for column, bounds := range nutrientRanges {
			text, _ := cell(column)
			v, ok := parseNumber(text)
			if !ok || v < bounds[0] || v > bounds[1] {
				keep = false
				break
			}
			values[column] = v
		}
		if !keep {
			continue
		}

		record := models.MealRecord{
			Title:    title,
			Calories: values[enums.ColumnCalories],
			Protein:  values[enums.ColumnProtein],
			Fat:      values[enums.ColumnFat],
			Sodium:   values[enums.ColumnSodium],
			Position: position,
		}

		slot, _ := cell(enums.ColumnMealSlot)
		record.MealSlot = NormalizeSlot(slot)

		if why, _ := cell(enums.ColumnWhy); why != "" {
			record.Why = why
		} else {
			record.Why = Why(record.Sodium, record.Protein)
		}

		score, _ := cell(enums.ColumnFinalScore)
		if v, ok := parseNumber(score); ok {
			record.FinalScore = v
		} else {
			record.FinalScore = DefaultFinalScore(record.Protein, record.Sodium, record.Fat)
		}

		if hasKind {
			kind, _ := cell(enums.ColumnKind)
			record.Kind = strings.ToLower(kind)
		}

		records = append(records, record)
	}

	return &Table{records: records, hasKind: hasKind}, nil
}

// NormalizeSlot maps anything unrecognized to either.
func NormalizeSlot(slot string) string {
	slot = strings.ToLower(strings.TrimSpace(slot))
	switch slot {
	case enums.SlotSuhoor, enums.SlotIftar, enums.SlotEither:
		return slot
	}
	return enums.SlotEither
}

// Why builds the rationale used when the source has none.
func Why(sodium, protein float64) string {
	sodiumNote := "higher sodium"
	if sodium <= 600 {
		sodiumNote = "lower sodium"
	}
	proteinNote := "moderate protein"
	if protein >= 25 {
		proteinNote = "high protein"
	}
	return sodiumNote + " + " + proteinNote
}

// DefaultFinalScore is the base desirability used when the source has none.
func DefaultFinalScore(protein, sodium, fat float64) float64 {
	return protein*0.8 - sodium/1200 - fat*0.05
}

func parseNumber(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
