package repoargs

type RepositoryName string

const (
	UserRepoName        RepositoryName = "user"
	ProductRepoName     RepositoryName = "product"
	CartRepoName        RepositoryName = "cart"
	TransactionRepoName RepositoryName = "transaction"
	CategoryRepoName    RepositoryName = "category"
	OrderRepoName       RepositoryName = "order"
	ReviewRepoName      RepositoryName = "review"
)
