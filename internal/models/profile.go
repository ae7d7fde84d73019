package models

// ReadingStats are the cosmetic profile numbers. They are fixed constants in
// this design, not computed from borrowing history.
type ReadingStats struct {
	BooksRead     int    `json:"books_read"`
	ReadingDays   int    `json:"reading_days"`
	FavoritePages int    `json:"favorite_pages"`
	Ranking       string `json:"ranking"`
}

// ProfileSummary is the view model for the profile page.
type ProfileSummary struct {
	Name  string       `json:"name"`
	Email string       `json:"email"`
	Stats ReadingStats `json:"stats"`
}
