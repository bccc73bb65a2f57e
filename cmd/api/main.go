package main

import (
	"context"
	"net/http"

	_ "jp-municipalities/docs"
	"jp-municipalities/internal/config"
	"jp-municipalities/internal/handler"
	"jp-municipalities/internal/logger"
	"jp-municipalities/internal/repository"
	"jp-municipalities/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Japanese Municipalities API
//	@version		1.0
//	@description	Lookup over the merged municipality dataset.
//	@BasePath		/
func main() {
	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(config.LogLevel, config.LogFormat)

	// Database connection
	conn, err := pgxpool.New(context.Background(), config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	// Initialize layers
	repo := repository.NewRepository(conn)

	municipalityService := service.NewMunicipalityService(repo)
	reverseGeocodeService := service.NewReverseGeoCodeService(repo)

	municipalityHandler := handler.NewMunicipalityHandler(municipalityService)
	reverseGeocodeHandler := handler.NewReverseGeocodeHandler(reverseGeocodeService)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/municipalities", municipalityHandler.Search)
	r.GET("/municipalities/:code", municipalityHandler.Get)
	r.GET("/reverse-geocode", reverseGeocodeHandler.ReverseGeocode)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	log.Info().Str("address", config.ServerAddress).Msg("starting server")
	if err := r.Run(config.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
