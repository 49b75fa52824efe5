package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-market/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup = "/api"

	SignupRoute         = "/auth/signup"
	LoginRoute          = "/auth/login"
	BalanceRoute        = "/auth/balance"
	ProductsRoute       = "/products"
	SellerRoute         = "/products/user/:userID"
	ProductRoute        = "/products/:productID"
	CartRoute           = "/cart"
	CartItemRoute       = "/cart/:cartItemID"
	CheckoutRoute       = "/transactions/checkout"
	AdjustRoute         = "/transactions/update-balance"
	GambleRoute         = "/transactions/gamble"
	TransactionsRoute   = "/transactions"
	CategoriesRoute     = "/categories"
	CategoryRoute       = "/categories/:categoryID"
	OrdersRoute         = "/orders"
	OrderRoute          = "/orders/:orderID"
	ReviewsRoute        = "/reviews"
	ProductReviewsRoute = "/reviews/product/:productID"
	ReviewRoute         = "/reviews/:reviewID"
	HealthRoute         = "/health"
)

type RouterArgs struct {
	Logger          *logrus.Logger
	UserService     UserServicer
	BalanceService  BalanceServicer
	ProductService  ProductServicer
	CartService     CartServicer
	CheckoutService CheckoutServicer
	CategoryService CategoryServicer
	OrderService    OrderServicer
	ReviewService   ReviewServicer
	JWTSecretKey    []byte
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService, args.BalanceService)
	productsHandler := NewProductsHandler(args.ProductService)
	cartHandler := NewCartHandler(args.CartService)
	transactionsHandler := NewTransactionsHandler(args.CheckoutService, args.BalanceService)
	categoriesHandler := NewCategoriesHandler(args.CategoryService)
	ordersHandler := NewOrdersHandler(args.OrderService)
	reviewsHandler := NewReviewsHandler(args.ReviewService)

	api := r.Group(RouteGroup)

	api.GET(HealthRoute, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	api.POST(SignupRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Signup)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	// Витрина, категории и отзывы читаются без авторизации.
	api.GET(ProductsRoute, optionalAuth(args.JWTSecretKey), productsHandler.Index)
	api.GET(SellerRoute, productsHandler.BySeller)
	api.GET(CategoriesRoute, categoriesHandler.Index)
	api.GET(ProductReviewsRoute, reviewsHandler.ByProduct)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.GET(BalanceRoute, authHandler.Balance)

	api.POST(ProductsRoute, productsHandler.Create)
	api.PUT(ProductRoute, productsHandler.Update)
	api.DELETE(ProductRoute, productsHandler.Delete)

	api.GET(CartRoute, cartHandler.Index)
	api.POST(CartRoute, cartHandler.Create)
	api.PUT(CartItemRoute, cartHandler.Update)
	api.DELETE(CartItemRoute, cartHandler.Delete)

	api.POST(CheckoutRoute, transactionsHandler.Checkout)
	api.POST(AdjustRoute, transactionsHandler.UpdateBalance)
	api.POST(GambleRoute, transactionsHandler.Gamble)
	api.GET(TransactionsRoute, transactionsHandler.Index)

	api.POST(CategoriesRoute, categoriesHandler.Create)
	api.PUT(CategoryRoute, categoriesHandler.Update)
	api.DELETE(CategoryRoute, categoriesHandler.Delete)

	api.GET(OrdersRoute, ordersHandler.Index)
	api.GET(OrderRoute, ordersHandler.Show)
	api.POST(OrdersRoute, ordersHandler.Create)
	api.PUT(OrderRoute, ordersHandler.Update)
	api.DELETE(OrderRoute, ordersHandler.Delete)

	api.POST(ReviewsRoute, reviewsHandler.Create)
	api.PUT(ReviewRoute, reviewsHandler.Update)
	api.DELETE(ReviewRoute, reviewsHandler.Delete)

	return r
}

// optionalAuth как AuthRequired, но без токена запрос проходит анонимно:
// витрина доступна всем, а авторизованным скрывает их собственные товары.
func optionalAuth(jwtTokenSecret []byte) gin.HandlerFunc {
	authMiddleware := middlewares.AuthRequired(jwtTokenSecret)
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		authMiddleware(c)
	}
}
