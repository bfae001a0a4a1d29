package models

type Book struct {
	BookName string `json:"book_name"`
	IsClosed bool   `json:"is_closed"`
}
