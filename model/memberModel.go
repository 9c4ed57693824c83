package model

type Member struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
