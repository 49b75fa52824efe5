package service

import (
	"fmt"

	"github.com/fsdevblog/groph-market/internal/service/psswd"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type AppServices struct {
	UserService     *UserService
	BalanceService  *BalanceService
	ProductService  *ProductService
	CartService     *CartService
	CheckoutService *CheckoutService
	CategoryService *CategoryService
	OrderService    *OrderService
	ReviewService   *ReviewService
}

func Factory(unitOfWork uow.UOW, jwtSecret []byte) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, jwtSecret, psswd.PasswordHash(""))
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	balanceService, balanceServiceErr := NewBalanceService(unitOfWork)
	if balanceServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", balanceServiceErr.Error())
	}

	productService, productServiceErr := NewProductService(unitOfWork)
	if productServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", productServiceErr.Error())
	}

	cartService, cartServiceErr := NewCartService(unitOfWork)
	if cartServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", cartServiceErr.Error())
	}

	checkoutService, checkoutServiceErr := NewCheckoutService(unitOfWork)
	if checkoutServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", checkoutServiceErr.Error())
	}

	categoryService, categoryServiceErr := NewCategoryService(unitOfWork)
	if categoryServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", categoryServiceErr.Error())
	}

	orderService, orderServiceErr := NewOrderService(unitOfWork)
	if orderServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", orderServiceErr.Error())
	}

	reviewService, reviewServiceErr := NewReviewService(unitOfWork)
	if reviewServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", reviewServiceErr.Error())
	}

	return &AppServices{
		UserService:     userService,
		BalanceService:  balanceService,
		ProductService:  productService,
		CartService:     cartService,
		CheckoutService: checkoutService,
		CategoryService: categoryService,
		OrderService:    orderService,
		ReviewService:   reviewService,
	}, nil
}
