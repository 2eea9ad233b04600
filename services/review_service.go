package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"tutorhub/db"
	"tutorhub/internal/events"
	"tutorhub/internal/health"
	"tutorhub/models"
	"tutorhub/reputation"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const minCommentLen = 10

// ReviewService owns rating submission and the derived reputation view.
// The engine math lives in the reputation package; this layer does the I/O.
type ReviewService struct {
	store    RecordStore
	cache    FallbackCache
	bus      EventBus
	notifier Notifier
	health   *health.State
}

// NewReviewService wires the review service to its collaborators.
func NewReviewService(store RecordStore, cache FallbackCache, bus EventBus, notifier Notifier, hs *health.State) *ReviewService {
	return &ReviewService{
		store:    store,
		cache:    cache,
		bus:      bus,
		notifier: notifier,
		health:   hs,
	}
}

// SubmitRating validates and persists one rating for a completed session,
// then refreshes the subject's aggregate. The stored submission is the source
// of truth; everything after the insert is best-effort and never rolls it back.
func (s *ReviewService) SubmitRating(ctx context.Context, sessionID, raterID, subjectID string, score int, comment string) (*models.RatingSubmission, error) {
	if !reputation.ValidScore(score) {
		return nil, ErrInvalidScore
	}
	comment = strings.TrimSpace(comment)
	if comment != "" && utf8.RuneCountInString(comment) < minCommentLen {
		return nil, ErrInvalidComment
	}

	// Pre-write duplicate check. The unique index on
	// (subjectId, raterId, sessionId) is the real enforcement point; this
	// check just gives a clean error without burning a write.
	var existing models.RatingSubmission
	err := s.store.FindOneByFields(ctx, db.CollectionRatings, map[string]interface{}{
		"subjectId": subjectID,
		"raterId":   raterID,
		"sessionId": sessionID,
	}, &existing)
	if err == nil {
		return nil, ErrDuplicateSubmission
	}
	if !errors.Is(err, db.ErrNotFound) {
		s.health.RecordFailure(err)
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}

	submission := models.RatingSubmission{
		SessionID: sessionID,
		RaterID:   raterID,
		SubjectID: subjectID,
		Score:     score,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	id, err := s.store.CreateRecord(ctx, db.CollectionRatings, submission)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, ErrDuplicateSubmission
		}
		s.health.RecordFailure(err)
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	s.health.RecordSuccess()

	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		submission.ID = oid
	}

	// Aggregate refresh is a cache repair, not part of the write: a failure
	// here leaves the submission in place and is fixed on the next read.
	if _, err := s.recomputeAggregate(ctx, subjectID); err != nil {
		log.Printf("Aggregate recompute failed for %s: %v", subjectID, err)
	}

	s.incrementRaterCounter(ctx, raterID)

	s.bus.Emit(events.RatingSubmitted, events.RatingSubmittedPayload{
		SubjectID:    subjectID,
		SubmissionID: id,
	})
	s.notifier.Notify(subjectID, "rating-received", map[string]interface{}{
		"sessionId": sessionID,
		"score":     score,
	})

	return &submission, nil
}

// GetAggregate returns the subject's reputation view. It recomputes from the
// full submission set on every read; when the store is unreachable it falls
// back to the cached copy, and to a zero aggregate as the last resort. The
// second return value reports whether the result came from the fallback cache.
func (s *ReviewService) GetAggregate(ctx context.Context, subjectID string) (models.ReputationAggregate, bool) {
	agg, err := s.recomputeAggregate(ctx, subjectID)
	if err == nil {
		return agg, false
	}

	s.health.RecordFailure(err)
	log.Printf("Aggregate read for %s falling back to cache: %v", subjectID, err)

	if cached, ok := s.cache.Get(ctx, aggregateCacheKey(subjectID)); ok {
		var fallback models.ReputationAggregate
		if err := json.Unmarshal([]byte(cached), &fallback); err == nil {
			return fallback, true
		}
	}

	return reputation.Compute(subjectID, nil, time.Now()), true
}

// GetSubmission fetches a single stored rating by id.
func (s *ReviewService) GetSubmission(ctx context.Context, id string) (*models.RatingSubmission, error) {
	var submission models.RatingSubmission
	if err := s.store.GetRecord(ctx, db.CollectionRatings, id, &submission); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, db.ErrNotFound
		}
		s.health.RecordFailure(err)
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	return &submission, nil
}

// GetSubmissions returns all ratings stored for a subject.
func (s *ReviewService) GetSubmissions(ctx context.Context, subjectID string) ([]models.RatingSubmission, error) {
	var submissions []models.RatingSubmission
	if err := s.store.QueryByField(ctx, db.CollectionRatings, "subjectId", subjectID, &submissions); err != nil {
		s.health.RecordFailure(err)
		return nil, fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	s.health.RecordSuccess()
	if submissions == nil {
		submissions = []models.RatingSubmission{}
	}
	return submissions, nil
}

// recomputeAggregate rebuilds the aggregate from the full submission set and
// writes it through to the stored copy and the fallback cache.
func (s *ReviewService) recomputeAggregate(ctx context.Context, subjectID string) (models.ReputationAggregate, error) {
	var submissions []models.RatingSubmission
	if err := s.store.QueryByField(ctx, db.CollectionRatings, "subjectId", subjectID, &submissions); err != nil {
		return models.ReputationAggregate{}, err
	}
	s.health.RecordSuccess()

	agg := reputation.Compute(subjectID, submissions, time.Now())

	// Concurrent recomputes race safely: every writer derives the same value
	// from the same or newer submission set, so last-writer-wins is fine.
	if err := s.store.UpsertByField(ctx, db.CollectionAggregates, "subjectId", subjectID, agg); err != nil {
		log.Printf("Failed to persist aggregate for %s: %v", subjectID, err)
	}
	if data, err := json.Marshal(agg); err == nil {
		s.cache.Set(ctx, aggregateCacheKey(subjectID), string(data))
	}

	return agg, nil
}

// incrementRaterCounter bumps the rater's reviewsGiven count, used for
// rater-side badges. Best-effort.
func (s *ReviewService) incrementRaterCounter(ctx context.Context, raterID string) {
	patch := bson.M{"$inc": bson.M{"reviewsGiven": 1}}
	if err := s.store.UpdateRecord(ctx, db.CollectionUsers, "userId", raterID, patch); err != nil {
		log.Printf("Failed to increment review counter for %s: %v", raterID, err)
	}
}

func aggregateCacheKey(subjectID string) string {
	return "reputation:" + subjectID
}
