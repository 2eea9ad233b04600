package controllers

import (
	"errors"
	"net/http"

	"tutorhub/db"
	"tutorhub/services"

	"github.com/gin-gonic/gin"
)

// ReviewController exposes rating submission and reputation reads.
type ReviewController struct {
	reviews *services.ReviewService
}

// NewReviewController creates the controller.
func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// SubmitReviewRequest is the body for POST /reviews
type SubmitReviewRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	RaterID   string `json:"raterId" binding:"required"`
	SubjectID string `json:"subjectId" binding:"required"`
	Score     int    `json:"score"`
	Comment   string `json:"comment,omitempty"`
}

// SubmitReview handles POST /reviews
func (rc *ReviewController) SubmitReview(c *gin.Context) {
	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	submission, err := rc.reviews.SubmitRating(c.Request.Context(), req.SessionID, req.RaterID, req.SubjectID, req.Score, req.Comment)
	if err != nil {
		switch {
		case services.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrDuplicateSubmission):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case services.IsRetryable(err):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unable to save review, please retry", "retryable": true})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"review": submission})
}

// GetReview handles GET /reviews/:id
func (rc *ReviewController) GetReview(c *gin.Context) {
	submission, err := rc.reviews.GetSubmission(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unable to load review, please retry", "retryable": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": submission})
}

// GetReputation handles GET /tutors/:id/reputation. It never 404s: an unknown
// tutor gets the zero aggregate at tier "new".
func (rc *ReviewController) GetReputation(c *gin.Context) {
	subjectID := c.Param("id")
	if subjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tutor ID is required"})
		return
	}

	agg, degraded := rc.reviews.GetAggregate(c.Request.Context(), subjectID)
	c.JSON(http.StatusOK, gin.H{
		"reputation": agg,
		"degraded":   degraded,
	})
}

// GetReviews handles GET /tutors/:id/reviews
func (rc *ReviewController) GetReviews(c *gin.Context) {
	subjectID := c.Param("id")
	if subjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tutor ID is required"})
		return
	}

	submissions, err := rc.reviews.GetSubmissions(c.Request.Context(), subjectID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporarily unable to load reviews, please retry", "retryable": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": submissions,
		"total":   len(submissions),
	})
}
