package repositories

import (
	"audora/internal/database"
)

type Repository struct {
	User     UserRepository
	Audio    AudioRepository
	Favorite FavoriteRepository
	History  HistoryRepository
	Playlist PlaylistRepository
	Token    TokenRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:     NewUserRepository(db), // User repo needs cache for caching
		Audio:    NewAudioRepository(db),
		Favorite: NewFavoriteRepository(db),
		History:  NewHistoryRepository(db),
		Playlist: NewPlaylistRepository(db),
		Token:    NewTokenRepository(db),
	}
}
