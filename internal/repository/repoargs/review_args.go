package repoargs

type CreateReview struct {
	UserID    int64
	ProductID int64
	Rating    int16
	Comment   string
}

type UpdateReview struct {
	ID      int64
	Rating  int16
	Comment string
}
