// Package export renders an itinerary for outside consumers: a copyable
// plain-text table and the JSON projections the map and route views draw.
package export

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

const defaultTitle = "나의 여행 일정"

// Text renders the whole plan as a pipe-separated table per day. Unscheduled
// stops are not part of the copy.
func Text(data *models.ItineraryData) string {
	if data == nil {
		return ""
	}
	var b strings.Builder

	title := data.Title
	if title == "" {
		title = defaultTitle
	}
	fmt.Fprintf(&b, "✈️ %s\n\n", title)

	for _, day := range data.Days {
		fmt.Fprintf(&b, "📅 %d일차: %s", day.DayNumber, day.Date)
		if day.Title != "" {
			fmt.Fprintf(&b, " - %s", day.Title)
		}
		b.WriteString("\n")
		if day.Theme != "" {
			fmt.Fprintf(&b, "테마: %s\n", day.Theme)
		}
		b.WriteString("시간 | 장소 | 구분 | 꿀팁 및 메모\n")
		b.WriteString("---|---|---|---\n")

		for _, it := range day.Items {
			memo := it.Memo
			if memo == "" {
				memo = "-"
			}
			fmt.Fprintf(&b, "%s | %s | %s %s | %s\n",
				it.Time, it.Location, textEmoji(it.Category), it.Category.Label(), memo)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func textEmoji(c models.Category) string {
	switch c {
	case models.CategoryRestaurant:
		return "🟢"
	case models.CategoryCafe, models.CategorySight:
		return "🟡"
	default:
		return "📍"
	}
}
