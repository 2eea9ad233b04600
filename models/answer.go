package models

import "time"

// CommunityAnswer is an answer as owned by the community Q&A surface.
// The ranking engine treats it as read-only input.
type CommunityAnswer struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"authorId"`
	AuthorRepScore float64   `json:"authorReputationScore"`
	Content        string    `json:"content"`
	Upvotes        int       `json:"upvotes"`
	Downvotes      int       `json:"downvotes"`
	CreatedAt      time.Time `json:"createdAt"`
	IsBestAnswer   bool      `json:"isBestAnswer"`
}

// RankedAnswer is a CommunityAnswer annotated for display.
type RankedAnswer struct {
	CommunityAnswer
	VoteCountsHidden bool `json:"voteCountsHidden"`
}

// DiversityStats describes author diversity of a ranked output list.
type DiversityStats struct {
	UniqueAuthorCount int     `json:"uniqueAuthorCount"`
	DiversityIndex    float64 `json:"diversityIndex"`
	NewContributors   int     `json:"newContributors"`
	Established       int     `json:"established"`
}
