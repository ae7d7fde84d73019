package models

// Book is a catalog entry. DueDate is set only while the book is out on loan.
type Book struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Year      int    `json:"year"`
	Genre     string `json:"genre"`
	Available bool   `json:"available"`
	DueDate   string `json:"due_date,omitempty"` // YYYY-MM-DD
}
