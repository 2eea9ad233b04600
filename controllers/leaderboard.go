package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"tutorhub/db"
	"tutorhub/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TutorEntry represents a leaderboard entry
type TutorEntry struct {
	Rank       int      `json:"rank"`
	SubjectID  string   `json:"subjectId"`
	MeanScore  float64  `json:"meanScore"`
	TotalCount int      `json:"totalCount"`
	Tier       string   `json:"tier"`
	Badges     []string `json:"badges"`
}

// GetLeaderboard fetches tutors ordered by mean score, then review volume.
func GetLeaderboard(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	collection := db.MongoDatabase.Collection(db.CollectionAggregates)
	findOptions := options.Find().
		SetSort(bson.D{{Key: "meanScore", Value: -1}, {Key: "totalCount", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Printf("Failed to fetch leaderboard: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unable to load leaderboard, please retry"})
		return
	}
	defer cursor.Close(ctx)

	var aggregates []models.ReputationAggregate
	if err := cursor.All(ctx, &aggregates); err != nil {
		log.Printf("Failed to decode leaderboard: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode leaderboard data"})
		return
	}

	var tutors []TutorEntry
	for i, agg := range aggregates {
		tutors = append(tutors, TutorEntry{
			Rank:       i + 1,
			SubjectID:  agg.SubjectID,
			MeanScore:  agg.MeanScore,
			TotalCount: agg.TotalCount,
			Tier:       agg.Tier,
			Badges:     agg.Badges,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"tutors": tutors,
		"total":  len(tutors),
	})
}
