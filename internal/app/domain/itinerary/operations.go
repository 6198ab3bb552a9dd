// Package itinerary holds the in-memory plan and every edit the planner
// offers. The functions in this file are pure: each clones its input, applies
// one change and returns the new aggregate, leaving the input untouched.
package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

const (
	// NewItemTime and NewItemLocation are the placeholders shown for a manually added stop.
	NewItemTime     = "00:00"
	NewItemLocation = "새 장소"

	// IncludedItemTime is assigned to a pool item with no time when it is scheduled.
	IncludedItemTime = "10:00"
)

// AddItem appends a blank OTHER stop with the given id to the end of a day.
func AddItem(data *models.ItineraryData, dayIndex int, id string) (*models.ItineraryData, error) {
	if err := checkDay(data, dayIndex); err != nil {
		return data, err
	}
	if strings.TrimSpace(id) == "" {
		return data, fmt.Errorf("%w: empty item id", models.ErrValidation)
	}

	next := data.Clone()
	next.Days[dayIndex].Items = append(next.Days[dayIndex].Items, models.ItineraryItem{
		ID:       id,
		Time:     NewItemTime,
		Location: NewItemLocation,
		Category: models.CategoryOther,
		VotedBy:  []string{},
	})
	return next, nil
}

// ExcludeItem moves a scheduled stop to the end of the unscheduled pool.
func ExcludeItem(data *models.ItineraryData, dayIndex, itemIndex int) (*models.ItineraryData, error) {
	if err := checkItem(data, dayIndex, itemIndex); err != nil {
		return data, err
	}

	next := data.Clone()
	items := next.Days[dayIndex].Items
	removed := items[itemIndex]
	next.Days[dayIndex].Items = append(items[:itemIndex], items[itemIndex+1:]...)
	next.UnscheduledItems = append(next.UnscheduledItems, removed)
	return next, nil
}

// IncludeItem moves a pool item to the end of the target day. An item without
// a time gets IncludedItemTime.
func IncludeItem(data *models.ItineraryData, unscheduledIndex, targetDayIndex int) (*models.ItineraryData, error) {
	if err := checkDay(data, targetDayIndex); err != nil {
		return data, err
	}
	if unscheduledIndex < 0 || unscheduledIndex >= len(data.UnscheduledItems) {
		return data, fmt.Errorf("%w: unscheduled item %d", models.ErrIndexOutOfRange, unscheduledIndex)
	}

	next := data.Clone()
	pool := next.UnscheduledItems
	item := pool[unscheduledIndex]
	next.UnscheduledItems = append(pool[:unscheduledIndex], pool[unscheduledIndex+1:]...)
	if item.Time == "" {
		item.Time = IncludedItemTime
	}
	next.Days[targetDayIndex].Items = append(next.Days[targetDayIndex].Items, item)
	return next, nil
}

// MoveItem swaps a stop with its neighbour. Moving the first stop up or the
// last stop down returns data unchanged and no error.
func MoveItem(data *models.ItineraryData, dayIndex, itemIndex int, dir models.Direction) (*models.ItineraryData, error) {
	if err := checkItem(data, dayIndex, itemIndex); err != nil {
		return data, err
	}

	var target int
	switch dir {
	case models.DirectionUp:
		target = itemIndex - 1
	case models.DirectionDown:
		target = itemIndex + 1
	default:
		return data, fmt.Errorf("%w: unknown direction %q", models.ErrValidation, dir)
	}
	if target < 0 || target >= len(data.Days[dayIndex].Items) {
		return data, nil
	}

	next := data.Clone()
	items := next.Days[dayIndex].Items
	items[itemIndex], items[target] = items[target], items[itemIndex]
	return next, nil
}

// UpdateItem replaces one editable field. The id is never touched.
func UpdateItem(data *models.ItineraryData, dayIndex, itemIndex int, field models.ItemField, value string) (*models.ItineraryData, error) {
	if err := checkItem(data, dayIndex, itemIndex); err != nil {
		return data, err
	}

	var category models.Category
	switch field {
	case models.FieldTime, models.FieldLocation, models.FieldMemo:
	case models.FieldCategory:
		c, ok := models.ParseCategory(value)
		if !ok {
			return data, fmt.Errorf("%w: unknown category %q", models.ErrValidation, value)
		}
		category = c
	default:
		return data, fmt.Errorf("%w: field %q is not editable", models.ErrValidation, field)
	}

	next := data.Clone()
	item := &next.Days[dayIndex].Items[itemIndex]
	switch field {
	case models.FieldTime:
		item.Time = value
	case models.FieldLocation:
		item.Location = value
	case models.FieldMemo:
		item.Memo = value
	case models.FieldCategory:
		item.Category = category
	}
	return next, nil
}

// CycleCategory advances a stop to the next category, wrapping after OTHER.
func CycleCategory(data *models.ItineraryData, dayIndex, itemIndex int) (*models.ItineraryData, error) {
	if err := checkItem(data, dayIndex, itemIndex); err != nil {
		return data, err
	}

	next := data.Clone()
	item := &next.Days[dayIndex].Items[itemIndex]
	item.Category = item.Category.Next()
	return next, nil
}

// ToggleVote adds member to the stop's votes, or removes it if present.
func ToggleVote(data *models.ItineraryData, dayIndex, itemIndex int, member string) (*models.ItineraryData, error) {
	if err := checkItem(data, dayIndex, itemIndex); err != nil {
		return data, err
	}
	if strings.TrimSpace(member) == "" {
		return data, fmt.Errorf("%w: empty member name", models.ErrValidation)
	}

	next := data.Clone()
	item := &next.Days[dayIndex].Items[itemIndex]
	item.VotedBy = toggle(item.VotedBy, member)
	return next, nil
}

// AddUnscheduled appends new stops to the pool. Items whose id already exists
// anywhere in the plan are skipped.
func AddUnscheduled(data *models.ItineraryData, items []models.ItineraryItem) (*models.ItineraryData, error) {
	if data == nil {
		return nil, models.ErrNoItinerary
	}

	seen := make(map[string]struct{}, data.ItemCount())
	for _, it := range data.AllItems() {
		seen[it.ID] = struct{}{}
	}

	next := data.Clone()
	for _, it := range items {
		if _, dup := seen[it.ID]; dup || it.ID == "" {
			continue
		}
		seen[it.ID] = struct{}{}
		next.UnscheduledItems = append(next.UnscheduledItems, it.Clone())
	}
	return next, nil
}

func toggle(votes []string, member string) []string {
	out := make([]string, 0, len(votes)+1)
	found := false
	for _, v := range votes {
		if v == member {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, member)
	}
	return out
}

func checkDay(data *models.ItineraryData, dayIndex int) error {
	if data == nil {
		return models.ErrNoItinerary
	}
	if dayIndex < 0 || dayIndex >= len(data.Days) {
		return fmt.Errorf("%w: day %d", models.ErrIndexOutOfRange, dayIndex)
	}
	return nil
}

func checkItem(data *models.ItineraryData, dayIndex, itemIndex int) error {
	if err := checkDay(data, dayIndex); err != nil {
		return err
	}
	if itemIndex < 0 || itemIndex >= len(data.Days[dayIndex].Items) {
		return fmt.Errorf("%w: item %d of day %d", models.ErrIndexOutOfRange, itemIndex, dayIndex)
	}
	return nil
}
