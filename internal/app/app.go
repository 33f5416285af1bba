package app

import (
	"context"

	"audora/config"
	"audora/internal/controllers"
	"audora/internal/database"
	"audora/internal/handlers/middleware"
	"audora/internal/jobs"
	"audora/internal/logger"
	"audora/internal/repositories"
	"audora/internal/services"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	Repos       repositories.Repository
	Services    services.Service
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	repos := repositories.New(db)

	svc, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	controllers := controllers.New(svc, repos, db)

	middleware := middleware.New(db, config, repos, svc.JWT, controllers.Auth)

	if config.SchedulerEnabled {
		tokenCleanupJob := jobs.NewTokenCleanupJob(repos.Token, services.Hourly)
		if err := svc.Scheduler.AddJob(tokenCleanupJob); err != nil {
			return &App{}, log.Err("failed to register token cleanup job", err)
		}
		if err := svc.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
		log.Info("Registered token cleanup job with scheduler")
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware,
		Repos:       repos,
		Services:    svc,
		Controllers: controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Services.JWT,
		a.Services.Mail,
		a.Services.Scheduler,
		a.Repos.User,
		a.Repos.Audio,
		a.Repos.Favorite,
		a.Repos.History,
		a.Repos.Playlist,
		a.Repos.Token,
		a.Controllers.Auth,
		a.Controllers.Audios,
		a.Controllers.Favorites,
		a.Controllers.History,
		a.Controllers.Playlists,
		a.Controllers.Profile,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
