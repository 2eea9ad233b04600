package models

import "time"

// Reputation tiers, ordered from lowest to highest.
const (
	TierNew         = "new"
	TierDeveloping  = "developing"
	TierExperienced = "experienced"
	TierExpert      = "expert"
	TierLegendary   = "legendary"
)

// Trend directions for a tutor's recent ratings.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// ReputationAggregate is the derived per-tutor view of its review history.
// It is a cache recomputed from the full submission set, never edited in place.
type ReputationAggregate struct {
	SubjectID      string      `bson:"subjectId" json:"subjectId"`
	TotalCount     int         `bson:"totalCount" json:"totalCount"`
	MeanScore      float64     `bson:"meanScore" json:"meanScore"`
	Distribution   map[int]int `bson:"distribution" json:"distribution"`
	Tier           string      `bson:"tier" json:"tier"`
	Badges         []string    `bson:"badges" json:"badges"`
	TrendDirection string      `bson:"trendDirection" json:"trendDirection"`
	TrendMagnitude float64     `bson:"trendMagnitude" json:"trendMagnitude"`
	UpdatedAt      time.Time   `bson:"updatedAt" json:"updatedAt"`
}
