package repoargs

type UpsertCartItem struct {
	UserID    int64
	ProductID int64
	Quantity  int32
}
