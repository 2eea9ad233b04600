package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RatingSubmission is one student's evaluation of a completed tutoring session.
// Immutable once stored; at most one per (subjectId, raterId, sessionId).
type RatingSubmission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID string             `bson:"sessionId" json:"sessionId"`
	RaterID   string             `bson:"raterId" json:"raterId"`
	SubjectID string             `bson:"subjectId" json:"subjectId"`
	Score     int                `bson:"score" json:"score"`
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
