package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"autoClassifieds/internal/models"
)

type accountRepository struct {
	db sqlx.ExtContext
}

func NewAccountRepository(db sqlx.ExtContext) AccountRepository {
	return &accountRepository{db: db}
}

const insertAccount = `
	INSERT INTO accounts (account_id, email, password_hash, phone, role, created_at)
	VALUES (:account_id, :email, :password_hash, :phone, :role, :created_at)
`

func prepareAccount(account *models.Account) {
	if account.AccountID == "" {
		account.AccountID = uuid.New().String()
	}

	if account.Role == "" {
		account.Role = models.RoleUser
	}

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	prepareAccount(account)

	_, err := sqlx.NamedExecContext(ctx, r.db, insertAccount, account)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account with email %s already exists: %w", account.Email, models.ErrConflict)
		}
		return fmt.Errorf("error creating account: %w", err)
	}

	return nil
}

// CreateIfAbsent inserts account unless its email is taken and reports whether a row was written.
func (r *accountRepository) CreateIfAbsent(ctx context.Context, account *models.Account) (bool, error) {
	prepareAccount(account)

	result, err := sqlx.NamedExecContext(ctx, r.db, insertAccount+` ON CONFLICT (email) DO NOTHING`, account)
	if err != nil {
		return false, fmt.Errorf("error creating account: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error checking affected rows: %w", err)
	}

	return rowsAffected == 1, nil
}

func (r *accountRepository) GetByID(ctx context.Context, accountID string) (*models.Account, error) {
	var account models.Account

	query := `SELECT * FROM accounts WHERE account_id = $1`

	if err := sqlx.GetContext(ctx, r.db, &account, query, accountID); err != nil {
		return nil, lookupError(err, "account "+accountID)
	}

	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account

	query := `SELECT * FROM accounts WHERE email = $1`

	if err := sqlx.GetContext(ctx, r.db, &account, query, email); err != nil {
		return nil, lookupError(err, "account with email "+email)
	}

	return &account, nil
}

func (r *accountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`

	if err := sqlx.GetContext(ctx, r.db, &exists, query, email); err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}

	return exists, nil
}
