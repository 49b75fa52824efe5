package pgrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/groph-market/internal/domain"
	"github.com/fsdevblog/groph-market/internal/repository/repoargs"
	"github.com/fsdevblog/groph-market/pkg/uow"
)

type UserRepository struct {
	db uow.DBTX
}

func NewUserRepository(db uow.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, created_at, updated_at, username, encrypted_password, balance"

// CreateUser создает юзера. В случае конфликта юзернейма возвращает ошибку domain.ErrDuplicateKey,
// во всех других случаях - domain.ErrUnknown.
func (u *UserRepository) CreateUser(ctx context.Context, args repoargs.CreateUser) (*domain.User, error) {
	row := u.db.QueryRow(ctx,
		`INSERT INTO users (username, encrypted_password, balance)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		args.Username, args.EncryptedPassword, args.Balance,
	)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user")
	}
	return user, nil
}

// FindByUsername ищет юзера по юзернейму. Возвращает domain.ErrRecordNotFound если запись не найдена.
func (u *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := u.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	user, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by username %s", username)
	}
	return user, nil
}

func (u *UserRepository) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := u.db.QueryRow(ctx, `SELECT balance FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		return decimal.Zero, convertErr(err, "getting balance of user %d", userID)
	}
	return balance, nil
}

// AdjustBalance атомарно применяет balance += delta и возвращает новый баланс.
// Обновление условное: баланс не может уйти в минус. Если условие не выполнилось,
// возвращается domain.ErrInsufficientFunds, если юзера нет - domain.ErrRecordNotFound.
func (u *UserRepository) AdjustBalance(
	ctx context.Context,
	userID int64,
	delta decimal.Decimal,
) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := u.db.QueryRow(ctx,
		`UPDATE users SET balance = balance + $2, updated_at = now()
		 WHERE id = $1 AND balance + $2 >= 0
		 RETURNING balance`,
		userID, delta,
	).Scan(&balance)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Нулевое кол-во строк означает либо отсутствие юзера, либо недостаток средств.
			var exists bool
			existsErr := u.db.QueryRow(ctx,
				`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if existsErr != nil {
				return decimal.Zero, convertErr(existsErr, "adjusting balance of user %d", userID)
			}
			if exists {
				return decimal.Zero, domain.ErrInsufficientFunds
			}
			return decimal.Zero, convertErr(err, "adjusting balance of user %d", userID)
		}
		return decimal.Zero, convertErr(err, "adjusting balance of user %d", userID)
	}
	return balance, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Username,
		&user.EncryptedPassword,
		&user.Balance,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &user, nil
}
