package model

// Book is one catalog identity: a (title, author) pair plus the number of
// copies currently on the shelf. Copies out on loan are not counted here.
type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	CopiesAvailable int64  `json:"copies_available"`
}
