package book

type CreateBookReq struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type UpdateBookReq struct {
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	CopiesAvailable int64  `json:"copies_available" validate:"gte=0"`
}
