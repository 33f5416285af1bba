package middleware

import (
	"audora/config"
	"audora/internal/database"
	"audora/internal/logger"
	"audora/internal/repositories"
	"audora/internal/services"

	authController "audora/internal/controllers/auth"
)

type Middleware struct {
	DB         database.DB
	Config     config.Config
	userRepo   repositories.UserRepository
	jwtService *services.JWTService
	auth       authController.AuthControllerInterface
	log        logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
	jwtService *services.JWTService,
	auth authController.AuthControllerInterface,
) Middleware {
	return Middleware{
		DB:         db,
		Config:     config,
		userRepo:   repos.User,
		jwtService: jwtService,
		auth:       auth,
		log:        logger.New("middleware"),
	}
}
