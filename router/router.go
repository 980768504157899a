package router

import (
	"html/template"
	"ramadan-meal-recommender/controllers/check"
	"ramadan-meal-recommender/controllers/meal"
	"ramadan-meal-recommender/controllers/readProbe"

	"github.com/gin-gonic/gin"
)

func Router(pages *template.Template, mealController *meal.Controller, checker *check.Checker) *gin.Engine {
	route := gin.Default()
	route.SetHTMLTemplate(pages)

	route.GET("/", mealController.Home)
	route.POST("/login", mealController.Login)
	route.POST("/recommend", mealController.Recommend)
	route.POST("/logout", mealController.Logout)

	api := route.Group("/api")
	api.POST("/recommend", mealController.RecommendAPI)

	route.GET("/read-probe", readProbe.Probe)
	route.GET("/check-live", checker.CheckAlive)

	return route
}
