package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, analysisHandler *AnalysisHandler, imageHandler *ImageHandler, authMiddleware gin.HandlerFunc) {
	api := r.Group("/api")
	{
		analysis := api.Group("/analysis", authMiddleware)
		{
			analysis.GET("/usage/status", analysisHandler.GetUsageStatus)
			analysis.GET("/:imageId", analysisHandler.GetAnalysis)
			analysis.POST("/analyze/:imageId", analysisHandler.AnalyzeImage)
		}

		upload := api.Group("/upload", authMiddleware)
		{
			upload.POST("", imageHandler.Upload)
			upload.GET("/my-images", imageHandler.ListMine)
			upload.DELETE("/:id", imageHandler.Delete)
		}
	}
}
