package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/internal/transport/api/tokens"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

// JWTTokenExpire срок жизни bearer токена.
const JWTTokenExpire = 24 * time.Hour

// startingBalance стартовый баланс нового аккаунта.
var startingBalance = decimal.NewFromInt(2000)

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	hasher         PasswordHasher
	jwtTokenSecret []byte
}

func NewUserService(u uow.UOW, jwtTokenSecret []byte, hasher PasswordHasher) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		hasher:         hasher,
		jwtTokenSecret: jwtTokenSecret,
	}, nil
}

type RegisterUserArgs struct {
	Username string
	Password string
}

// Register создает юзера со стартовым балансом. После успешного создания генерирует jwt token.
// Возвращает 3 значения: созданный юзер, токен и ошибку. Если юзернейм занят,
// вернется ошибка domain.ErrDuplicateKey.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, string, error) {
	password, hashErr := s.hasher.HashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering user: %s", hashErr.Error())
	}
	var user *domain.User
	var token string
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var userErr, tokenErr error
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		user, userErr = userRepo.CreateUser(c, repoargs.CreateUser{
			Username:          args.Username,
			EncryptedPassword: password,
			Balance:           startingBalance,
		})
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}

		token, tokenErr = tokens.GenerateUserJWT(user.ID, JWTTokenExpire, s.jwtTokenSecret)
		if tokenErr != nil {
			return tokenErr //nolint:wrapcheck
		}
		return nil
	})

	if txErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", txErr)
	}
	return user, token, nil
}

type LoginUserArgs struct {
	Username string
	Password string
}

// Login аутентифицирует юзера по паре логин/пароль. Возвращает юзера, jwt token и ошибку.
// Незнакомый юзернейм - domain.ErrRecordNotFound, неверный пароль - domain.ErrPasswordMissMatch.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, findErr := s.userRepo.FindByUsername(ctx, args.Username)
	if findErr != nil {
		return nil, "", fmt.Errorf("logging in user: %w", findErr)
	}

	if !s.hasher.ComparePassword(args.Password, user.EncryptedPassword) {
		return nil, "", fmt.Errorf("logging in user: %w", domain.ErrPasswordMissMatch)
	}

	token, tokenErr := tokens.GenerateUserJWT(user.ID, JWTTokenExpire, s.jwtTokenSecret)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("logging in user: %s", tokenErr.Error())
	}
	return user, token, nil
}
