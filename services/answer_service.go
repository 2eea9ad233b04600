package services

import (
	"time"

	"tutorhub/models"
	"tutorhub/ranking"
)

// AnswerService fronts the anti-bias ranking engine for the API layer.
type AnswerService struct {
	engine   *ranking.Engine
	defaults ranking.Config
}

// NewAnswerService creates an answer service around a ranking engine.
func NewAnswerService(engine *ranking.Engine, defaults ranking.Config) *AnswerService {
	return &AnswerService{engine: engine, defaults: defaults}
}

// Rank orders answers for display and reports diversity statistics over the
// output. Zero-valued fields in overrides fall back to the configured defaults.
func (s *AnswerService) Rank(answers []models.CommunityAnswer, overrides ranking.Config, now time.Time) ([]models.RankedAnswer, models.DiversityStats) {
	cfg := s.defaults
	if overrides.HideVotesWindowHours > 0 {
		cfg.HideVotesWindowHours = overrides.HideVotesWindowHours
	}
	if overrides.ShuffleBoundaryCount > 0 {
		cfg.ShuffleBoundaryCount = overrides.ShuffleBoundaryCount
	}
	if overrides.NewContributorQuota > 0 {
		cfg.NewContributorQuota = overrides.NewContributorQuota
	}
	if overrides.EstablishedContributorQuota > 0 {
		cfg.EstablishedContributorQuota = overrides.EstablishedContributorQuota
	}

	ranked := s.engine.Rank(answers, cfg, now)
	return ranked, ranking.Diversity(ranked)
}

// Summarize returns the neutral gist of a single answer.
func (s *AnswerService) Summarize(answer models.CommunityAnswer) string {
	return ranking.Summarize(answer)
}
