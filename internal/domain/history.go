package domain

import "time"

// MatchRecord is one successful match kept in the local history.
type MatchRecord struct {
	ID             string    `json:"id"`
	DogID          string    `json:"dog_id"`
	DogName        string    `json:"dog_name"`
	Breed          string    `json:"breed"`
	ZipCode        string    `json:"zip_code"`
	FavoritesCount int       `json:"favorites_count"`
	UserEmail      string    `json:"user_email"`
	MatchedAt      time.Time `json:"matched_at"`
}
