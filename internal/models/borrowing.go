package models

// Borrowing is a loan record linking one user to one book.
// Dates are serialized as YYYY-MM-DD.
type Borrowing struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	BookID     int    `json:"book_id"`
	BorrowDate string `json:"borrow_date"`
	DueDate    string `json:"due_date"`
	Returned   bool   `json:"returned"`
}
