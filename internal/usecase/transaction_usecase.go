package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidTransactionID = errors.New("invalid transaction id")
	ErrInvalidTransaction   = errors.New("invalid transaction payload")
	ErrLinkedTransaction    = errors.New("transaction is linked to a service order")
)

// TransactionInput is a manual ledger entry. Order-linked income entries are
// produced by the order lifecycle, never through this input.
type TransactionInput struct {
	Type          entities.TransactionType
	Description   string
	Amount        float64
	PaymentMethod string
}

// CashFlowSummary aggregates the ledger.
type CashFlowSummary struct {
	TotalIncome  float64 `json:"total_income"`
	TotalExpense float64 `json:"total_expense"`
	Balance      float64 `json:"balance"`
}

// ITransactionUseCase manages the cash-flow ledger.

type ITransactionUseCase interface {
	Create(ctx context.Context, tenant string, in TransactionInput) (entities.FinancialTransaction, error)
	List(ctx context.Context, tenant string) ([]entities.FinancialTransaction, error)
	Delete(ctx context.Context, tenant, id string) error
	Summary(ctx context.Context, tenant string) (CashFlowSummary, error)
}

type TransactionUseCase struct {
	repo interfaces.ITransactionRepository
	now  func() time.Time
}

var _ ITransactionUseCase = (*TransactionUseCase)(nil)

func NewTransactionUseCase(repo interfaces.ITransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (u *TransactionUseCase) Create(ctx context.Context, tenant string, in TransactionInput) (entities.FinancialTransaction, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" || in.Amount <= 0 {
		return entities.FinancialTransaction{}, ErrInvalidTransaction
	}
	if in.Type != entities.TransactionTypeIncome && in.Type != entities.TransactionTypeExpense {
		return entities.FinancialTransaction{}, ErrInvalidTransaction
	}
	t := entities.FinancialTransaction{
		ID:            uuid.NewString(),
		Type:          in.Type,
		Description:   in.Description,
		Amount:        in.Amount,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Date:          u.now(),
	}
	return u.repo.Create(ctx, tenant, t)
}

func (u *TransactionUseCase) List(ctx context.Context, tenant string) ([]entities.FinancialTransaction, error) {
	return u.repo.List(ctx, tenant)
}

// Delete refuses to remove order-linked entries; those live and die with
// their order.
func (u *TransactionUseCase) Delete(ctx context.Context, tenant, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidTransactionID
	}
	t, err := u.repo.GetByID(ctx, tenant, id)
	if err != nil {
		return err
	}
	if t.ID == "" {
		return ErrTransactionNotFound
	}
	if t.RelatedID != "" {
		return ErrLinkedTransaction
	}
	return u.repo.Delete(ctx, tenant, t.ID)
}

func (u *TransactionUseCase) Summary(ctx context.Context, tenant string) (CashFlowSummary, error) {
	all, err := u.repo.List(ctx, tenant)
	if err != nil {
		return CashFlowSummary{}, err
	}
	var s CashFlowSummary
	for _, t := range all {
		switch t.Type {
		case entities.TransactionTypeIncome:
			s.TotalIncome += t.Amount
		case entities.TransactionTypeExpense:
			s.TotalExpense += t.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s, nil
}
