package controllers

import (
	"net/http"
	"time"

	"tutorhub/models"
	"tutorhub/ranking"
	"tutorhub/services"

	"github.com/gin-gonic/gin"
)

// AnswerController exposes the anti-bias ranking operations.
type AnswerController struct {
	answers *services.AnswerService
}

// NewAnswerController creates the controller.
func NewAnswerController(answers *services.AnswerService) *AnswerController {
	return &AnswerController{answers: answers}
}

// RankRequest is the body for POST /answers/rank
type RankRequest struct {
	Answers []models.CommunityAnswer `json:"answers" binding:"required"`
	Config  ranking.Config           `json:"config,omitempty"`
}

// RankAnswers handles POST /answers/rank
func (ac *AnswerController) RankAnswers(c *gin.Context) {
	var req RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ranked, stats := ac.answers.Rank(req.Answers, req.Config, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"answers":   ranked,
		"diversity": stats,
	})
}

// SummarizeRequest is the body for POST /answers/summary
type SummarizeRequest struct {
	Answer models.CommunityAnswer `json:"answer" binding:"required"`
}

// SummarizeAnswer handles POST /answers/summary
func (ac *AnswerController) SummarizeAnswer(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": ac.answers.Summarize(req.Answer),
	})
}
