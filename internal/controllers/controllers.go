package controllers

import (
	"audora/internal/database"
	"audora/internal/repositories"
	"audora/internal/services"

	audiosController "audora/internal/controllers/audios"
	authController "audora/internal/controllers/auth"
	favoritesController "audora/internal/controllers/favorites"
	historyController "audora/internal/controllers/history"
	playlistsController "audora/internal/controllers/playlists"
	profileController "audora/internal/controllers/profile"
)

type Controllers struct {
	Auth      authController.AuthControllerInterface
	Audios    audiosController.AudiosControllerInterface
	Favorites favoritesController.FavoritesControllerInterface
	History   historyController.HistoryControllerInterface
	Playlists playlistsController.PlaylistsControllerInterface
	Profile   profileController.ProfileControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:      authController.New(services, repos, db),
		Audios:    audiosController.New(repos, services, db),
		Favorites: favoritesController.New(repos, services, db),
		History:   historyController.New(repos, services, db),
		Playlists: playlistsController.New(repos, services, db),
		Profile:   profileController.New(repos, services, db),
	}
}
