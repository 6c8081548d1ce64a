package dto

type CreateCategoryInput struct {
	Name string `json:"name"`
}

type UpdateCategoryInput struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
}
