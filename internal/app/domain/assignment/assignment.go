package assignment

import (
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

// Options configures enrichment. Zero values fall back to the defaults.
type Options struct {
	Presets          []models.MemberPreset
	Essentials       models.EssentialKeywords
	CaseSensitiveMem bool
}

// Assigner runs the one-shot enrichment after extraction.
type Assigner struct {
	airport *keywordMatcher
	lodging *keywordMatcher
	members []memberMatcher
	logger  *zap.Logger
}

type memberMatcher struct {
	name    string
	matcher *keywordMatcher
}

// NewAssigner builds the keyword automatons once so every upload reuses them.
func NewAssigner(opts Options, logger *zap.Logger) *Assigner {
	if logger == nil {
		logger = zap.NewNop()
	}
	kw := opts.Essentials
	if len(kw.Airport) == 0 && len(kw.Lodging) == 0 {
		kw = models.DefaultEssentialKeywords()
	}

	a := &Assigner{
		airport: newKeywordMatcher(kw.Airport, true),
		lodging: newKeywordMatcher(kw.Lodging, true),
		logger:  logger,
	}
	for _, p := range opts.Presets {
		if p.Name == "" {
			continue
		}
		a.members = append(a.members, memberMatcher{
			name:    p.Name,
			matcher: newKeywordMatcher(p.Keywords, !opts.CaseSensitiveMem),
		})
	}
	return a
}

// DetectEssentials returns the first airport and the first lodging found when
// scanning days in order and then the unscheduled pool. A stop qualifies by
// category or by a keyword in its name; ties go to scan order.
func (a *Assigner) DetectEssentials(data *models.ItineraryData) models.Essentials {
	var e models.Essentials
	var airportFound, hotelFound bool

	for _, it := range data.AllItems() {
		if !airportFound && (it.Category == models.CategoryAirport || a.airport.Contains(it.Location)) {
			e.Airport = it.Location
			airportFound = true
		}
		if !hotelFound && (it.Category == models.CategoryAccommodation || a.lodging.Contains(it.Location)) {
			e.Hotel = it.Location
			hotelFound = true
		}
		if airportFound && hotelFound {
			break
		}
	}
	return e
}

// SeedVotesFromPresets adds each member whose keywords appear in a stop's
// name to that stop's votes. It returns a new aggregate.
func (a *Assigner) SeedVotesFromPresets(data *models.ItineraryData) *models.ItineraryData {
	if data == nil {
		return nil
	}
	next := data.Clone()
	if len(a.members) == 0 {
		return next
	}

	seed := func(items []models.ItineraryItem) int {
		added := 0
		for i := range items {
			it := &items[i]
			for _, m := range a.members {
				if m.matcher.Contains(it.Location) && !it.HasVote(m.name) {
					it.VotedBy = append(it.VotedBy, m.name)
					added++
				}
			}
		}
		return added
	}

	added := 0
	for d := range next.Days {
		added += seed(next.Days[d].Items)
	}
	added += seed(next.UnscheduledItems)

	a.logger.Debug("Seeded votes from member presets",
		zap.Int("members", len(a.members)),
		zap.Int("votes", added))
	return next
}

// Enrich seeds votes and then detects essentials.
func (a *Assigner) Enrich(data *models.ItineraryData) (*models.ItineraryData, models.Essentials) {
	seeded := a.SeedVotesFromPresets(data)
	return seeded, a.DetectEssentials(seeded)
}

// Members returns the configured member names in preset order.
func (a *Assigner) Members() []string {
	names := make([]string, len(a.members))
	for i, m := range a.members {
		names[i] = m.name
	}
	return names
}
