package models

// MemberPreset is one travel-group member and the interest keywords whose
// presence in a stop name counts as that member's vote.
type MemberPreset struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// EssentialKeywords are the name fragments that mark a stop as the trip's
// airport or lodging when its category alone does not.
type EssentialKeywords struct {
	Airport []string `json:"airport" yaml:"airport"`
	Lodging []string `json:"lodging" yaml:"lodging"`
}

// DefaultEssentialKeywords matches the Korean and English names extraction usually produces.
func DefaultEssentialKeywords() EssentialKeywords {
	return EssentialKeywords{
		Airport: []string{"공항", "Airport"},
		Lodging: []string{"호텔", "숙소", "Hotel"},
	}
}
