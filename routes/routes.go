package routes

import (
	"tutorhub/controllers"
	"tutorhub/services"
	"tutorhub/websocket"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers all API routes on the router.
func SetupRoutes(router *gin.Engine, reviews *services.ReviewService, answers *services.AnswerService, healthCtrl *controllers.HealthController, hub *websocket.Hub) {
	reviewController := controllers.NewReviewController(reviews)
	router.POST("/reviews", reviewController.SubmitReview)
	router.GET("/reviews/:id", reviewController.GetReview)
	router.GET("/tutors/:id/reputation", reviewController.GetReputation)
	router.GET("/tutors/:id/reviews", reviewController.GetReviews)
	router.GET("/leaderboard", controllers.GetLeaderboard)

	answerController := controllers.NewAnswerController(answers)
	router.POST("/answers/rank", answerController.RankAnswers)
	router.POST("/answers/summary", answerController.SummarizeAnswer)

	router.GET("/health", healthCtrl.GetHealth)
	router.GET("/ws", hub.Handler)
}
