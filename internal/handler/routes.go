/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package handler

import "github.com/gin-gonic/gin"

func (h *HttpHandlers) RegisterRoutes(router *gin.Engine) {
	router.Use(h.LoggerMiddleware())
	router.Use(h.CORSMiddleware())

	v1 := router.Group("/api/v1")
	v1.Use(h.AuthMiddleware())
	{
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", h.HandleListTasks)
			tasks.POST("", h.HandleAddTask)
			tasks.GET("/board", h.HandleTaskBoard)
			tasks.GET("/stream", h.HandleStreamTaskBoard)
			tasks.POST("/:id/toggle", h.HandleToggleTask)
			tasks.POST("/:id/postpone", h.HandlePostponeTask)
			tasks.DELETE("/:id", h.HandleDeleteTask)
		}

		finance := v1.Group("/finance")
		{
			finance.GET("/income", h.HandleListIncome)
			finance.POST("/income", h.HandleAddIncome)
			finance.GET("/income/stream", h.HandleStreamIncome)
			finance.DELETE("/income/:id", h.HandleDeleteIncome)

			finance.GET("/spending", h.HandleListSpending)
			finance.POST("/spending", h.HandleAddSpending)
			finance.GET("/spending/stream", h.HandleStreamSpending)
			finance.DELETE("/spending/:id", h.HandleDeleteSpending)

			finance.GET("/recurring", h.HandleListRecurring)
			finance.POST("/recurring", h.HandleAddRecurring)
			finance.GET("/recurring/stream", h.HandleStreamRecurring)
			finance.POST("/recurring/:id/active", h.HandleToggleRecurringActive)
			finance.POST("/recurring/:id/paid", h.HandleToggleRecurringPaid)
			finance.DELETE("/recurring/:id", h.HandleDeleteRecurring)

			finance.GET("/summary", h.HandleMonthlySummary)
		}

		apps := v1.Group("/apps")
		{
			apps.GET("", h.HandleListApps)
			apps.POST("", h.HandleAddApp)
			apps.GET("/stream", h.HandleStreamApps)
			apps.GET("/:id", h.HandleGetApp)
			apps.PUT("/:id", h.HandleUpdateApp)
			apps.DELETE("/:id", h.HandleDeleteApp)
			apps.GET("/:id/metrics", h.HandleListMetrics)
			apps.POST("/:id/metrics", h.HandleAddMetric)
			apps.GET("/:id/metrics/stream", h.HandleStreamMetrics)
		}

		mood := v1.Group("/mood")
		{
			mood.GET("", h.HandleListMoods)
			mood.PUT("", h.HandleSaveMood)
			mood.GET("/:date", h.HandleGetMood)
		}

		activities := v1.Group("/activities")
		{
			activities.GET("", h.HandleListActivities)
			activities.POST("", h.HandleAddActivity)
			activities.GET("/stream", h.HandleStreamActivities)
			activities.DELETE("/:id", h.HandleDeleteActivity)
		}

		food := v1.Group("/food")
		{
			food.GET("", h.HandleListFood)
			food.POST("", h.HandleAddFood)
			food.GET("/stream", h.HandleStreamFood)
			food.DELETE("/:id", h.HandleDeleteFood)
		}

		ideas := v1.Group("/ideas")
		{
			ideas.GET("", h.HandleListIdeas)
			ideas.POST("", h.HandleAddIdea)
			ideas.GET("/stream", h.HandleStreamIdeas)
			ideas.PATCH("/:id", h.HandleSetIdeaPriority)
			ideas.DELETE("/:id", h.HandleDeleteIdea)
		}

		v1.GET("/meta/options", h.HandleOptions)
	}

	router.GET("/summary", h.AuthMiddleware(), h.HandleSummaryPage)
}
