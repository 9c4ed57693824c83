package model

// Loan records one member currently holding one copy of one book. It holds
// lookup keys only; the referenced rows may be renamed independently.
type Loan struct {
	ID       int64 `json:"id"`
	MemberID int64 `json:"member_id"`
	BookID   int64 `json:"book_id"`
}

// LoanDetail is the joined row shape returned by member-name lookups.
type LoanDetail struct {
	LoanID     int64  `json:"loan_id"`
	MemberID   int64  `json:"member_id"`
	MemberName string `json:"member_name"`
	BookID     int64  `json:"book_id"`
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
}

// TitleCount is one row of the borrow-count report.
type TitleCount struct {
	Title string `json:"title"`
	Count int64  `json:"count"`
}
