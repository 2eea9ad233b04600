package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines a marketplace user (student or tutor)
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       string             `bson:"userId" json:"userId"`
	Email        string             `bson:"email" json:"email"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	Bio          string             `bson:"bio" json:"bio"`
	IsTutor      bool               `bson:"isTutor" json:"isTutor"`
	Subjects     []string           `bson:"subjects,omitempty" json:"subjects,omitempty"`
	ReviewsGiven int                `bson:"reviewsGiven" json:"reviewsGiven"`
	AvatarURL    string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// ReviewEvent is an event broadcast to connected clients when review
// state changes (badge earned, rating submitted, tier change).
type ReviewEvent struct {
	Type      string    `json:"type"`
	SubjectID string    `json:"subjectId,omitempty"`
	UserID    string    `json:"userId,omitempty"`
	BadgeName string    `json:"badgeName,omitempty"`
	Tier      string    `json:"tier,omitempty"`
	Score     int       `json:"score,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
