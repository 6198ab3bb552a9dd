package extraction

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

// DefaultTitle is shown when the model returns no trip title.
const DefaultTitle = "나의 여행 일정"

// cleanJSON strips markdown fences and any prose around the outer object.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl >= 0 {
			s = s[nl+1:]
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	if start, end := strings.Index(s, "{"), strings.LastIndex(s, "}"); start >= 0 && end > start {
		s = s[start : end+1]
	}
	return strings.TrimSpace(s)
}

// ParsePayload decodes a model response into a normalised itinerary. Broken
// JSON gets one repair attempt before failing.
func ParsePayload(raw string, newID func() string) (*models.ItineraryData, error) {
	cleaned := cleanJSON(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("%w: empty response", models.ErrExtractionFailed)
	}

	var data models.ItineraryData
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(cleaned)
		if repairErr != nil {
			return nil, fmt.Errorf("%w: invalid JSON: %v", models.ErrExtractionFailed, err)
		}
		data = models.ItineraryData{}
		if err := json.Unmarshal([]byte(repaired), &data); err != nil {
			return nil, fmt.Errorf("%w: invalid JSON after repair: %v", models.ErrExtractionFailed, err)
		}
	}

	Normalize(&data, newID)
	return &data, nil
}

// Normalize makes a decoded payload satisfy the pool invariant: every item
// has a unique id and no slice is nil.
func Normalize(data *models.ItineraryData, newID func() string) {
	if strings.TrimSpace(data.Title) == "" {
		data.Title = DefaultTitle
	}
	if data.Days == nil {
		data.Days = []models.DayItinerary{}
	}
	if data.UnscheduledItems == nil {
		data.UnscheduledItems = []models.ItineraryItem{}
	}

	seen := make(map[string]struct{})
	fix := func(items []models.ItineraryItem) {
		for i := range items {
			it := &items[i]
			it.ID = strings.TrimSpace(it.ID)
			if _, dup := seen[it.ID]; it.ID == "" || dup {
				it.ID = newID()
			}
			seen[it.ID] = struct{}{}
			it.VotedBy = dedupe(it.VotedBy)
		}
	}

	for d := range data.Days {
		day := &data.Days[d]
		if day.DayNumber <= 0 {
			day.DayNumber = d + 1
		}
		if day.Items == nil {
			day.Items = []models.ItineraryItem{}
		}
		fix(day.Items)
	}
	fix(data.UnscheduledItems)
}

func dedupe(votes []string) []string {
	out := make([]string, 0, len(votes))
	seen := make(map[string]struct{}, len(votes))
	for _, v := range votes {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
