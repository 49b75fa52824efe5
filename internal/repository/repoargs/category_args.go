package repoargs

type CreateCategory struct {
	Name        string
	Description string
}

type UpdateCategory struct {
	ID          int64
	Name        string
	Description string
}
