package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"savrepa-api/config"
	"savrepa-api/controllers"
	"savrepa-api/middleware"
	"savrepa-api/services"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, notifier *services.Notifier) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret)
	userController := controllers.NewUserController(db)
	motoModelController := controllers.NewMotoModelController(db)
	motoController := controllers.NewMotoController(db)
	contractController := controllers.NewContractController(db)
	serviceController := controllers.NewServiceController(db)
	checklistController := controllers.NewChecklistController(db)
	repairController := controllers.NewRepairController(db)
	partController := controllers.NewPartController(db, notifier)
	thresholdController := controllers.NewMaintenanceThresholdController(db)
	marqueController := controllers.NewMarqueController(db)
	modeleController := controllers.NewModeleController(db)
	typeContratController := controllers.NewTypeContratController(db)
	prestationController := controllers.NewContratPrestationController(db)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Sav Repa backend is running.")
	})

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	api := r.Group("/api")

	// Login stays public and rate limited
	api.POST("/login", middleware.RateLimit(cfg.LoginRatePerMinute, cfg.LoginRateBurst), authController.Login)

	protected := api.Group("/")
	if cfg.AuthRequired {
		protected.Use(middleware.RequireAuth(cfg.JWTSecret))
	}
	{
		users := protected.Group("/users")
		{
			users.GET("", userController.GetUsers)
			users.GET("/:id", userController.GetUser)
			users.POST("", userController.CreateUser)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
		}

		motoModels := protected.Group("/moto_models")
		{
			motoModels.GET("", motoModelController.GetMotoModels)
			motoModels.GET("/:id", motoModelController.GetMotoModel)
			motoModels.POST("", motoModelController.CreateMotoModel)
			motoModels.PUT("/:id", motoModelController.UpdateMotoModel)
			motoModels.DELETE("/:id", motoModelController.DeleteMotoModel)
		}

		motos := protected.Group("/motos")
		{
			motos.GET("", motoController.GetMotos)
			motos.GET("/:id", motoController.GetMoto)
			motos.POST("", motoController.CreateMoto)
			motos.PUT("/:id", motoController.UpdateMoto)
			motos.DELETE("/:id", motoController.DeleteMoto)
		}

		contracts := protected.Group("/contracts")
		{
			contracts.GET("", contractController.GetContracts)
			contracts.GET("/:id", contractController.GetContract)
			contracts.POST("", contractController.CreateContract)
			contracts.PUT("/:id", contractController.UpdateContract)
			contracts.DELETE("/:id", contractController.DeleteContract)
		}

		servicesGroup := protected.Group("/services")
		{
			servicesGroup.GET("", serviceController.GetServices)
			servicesGroup.GET("/:id", serviceController.GetService)
			servicesGroup.POST("", serviceController.CreateService)
			servicesGroup.PUT("/:id", serviceController.UpdateService)
			servicesGroup.DELETE("/:id", serviceController.DeleteService)
		}

		checklists := protected.Group("/checklists")
		{
			checklists.GET("", checklistController.GetChecklists)
			checklists.GET("/:id", checklistController.GetChecklist)
			checklists.POST("", checklistController.CreateChecklist)
			checklists.PUT("/:id", checklistController.UpdateChecklist)
			checklists.DELETE("/:id", checklistController.DeleteChecklist)
		}

		repairs := protected.Group("/repairs")
		{
			repairs.GET("", repairController.GetRepairs)
			repairs.GET("/:id", repairController.GetRepair)
			repairs.POST("", repairController.CreateRepair)
			repairs.PUT("/:id", repairController.UpdateRepair)
			repairs.DELETE("/:id", repairController.DeleteRepair)
		}

		parts := protected.Group("/parts")
		{
			parts.GET("", partController.GetParts)
			parts.GET("/:id", partController.GetPart)
			parts.POST("", partController.CreatePart)
			parts.PUT("/:id", partController.UpdatePart)
			parts.DELETE("/:id", partController.DeletePart)
		}

		thresholds := protected.Group("/maintenance_thresholds")
		{
			thresholds.GET("", thresholdController.GetMaintenanceThresholds)
			thresholds.GET("/:id", thresholdController.GetMaintenanceThreshold)
			thresholds.POST("", thresholdController.CreateMaintenanceThreshold)
			thresholds.PUT("/:id", thresholdController.UpdateMaintenanceThreshold)
			thresholds.DELETE("/:id", thresholdController.DeleteMaintenanceThreshold)
		}

		marques := protected.Group("/marques")
		{
			marques.GET("", marqueController.GetMarques)
			marques.GET("/:id", marqueController.GetMarque)
			marques.POST("", marqueController.CreateMarque)
			marques.PUT("/:id", marqueController.UpdateMarque)
			marques.DELETE("/:id", marqueController.DeleteMarque)
		}

		modeles := protected.Group("/modeles")
		{
			modeles.GET("", modeleController.GetModeles)
			modeles.GET("/:id", modeleController.GetModele)
			modeles.POST("", modeleController.CreateModele)
			modeles.PUT("/:id", modeleController.UpdateModele)
			modeles.DELETE("/:id", modeleController.DeleteModele)
		}

		typeContrats := protected.Group("/type_contrats")
		{
			typeContrats.GET("", typeContratController.GetTypeContrats)
			typeContrats.GET("/:id", typeContratController.GetTypeContrat)
			typeContrats.POST("", typeContratController.CreateTypeContrat)
			typeContrats.PUT("/:id", typeContratController.UpdateTypeContrat)
			typeContrats.DELETE("/:id", typeContratController.DeleteTypeContrat)
		}

		prestations := protected.Group("/contrat_prestations")
		{
			prestations.GET("", prestationController.GetContratPrestations)
			prestations.GET("/:id", prestationController.GetContratPrestation)
			prestations.POST("", prestationController.CreateContratPrestation)
			prestations.PUT("/:id", prestationController.UpdateContratPrestation)
			prestations.DELETE("/:id", prestationController.DeleteContratPrestation)
		}
	}
}
