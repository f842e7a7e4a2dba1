package services

import (
	"context"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/domain/utils"

	log "github.com/sirupsen/logrus"
)

// economyService implements the currency account operations. It is the single
// path through which money moves in or out of participant accounts; every
// movement leaves a balance history entry.
type economyService struct {
	accountRepo        interfaces.AccountRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
	startingBalance    int64
}

// NewEconomyService creates a new economy service
func NewEconomyService(
	accountRepo interfaces.AccountRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
	startingBalance int64,
) interfaces.EconomyService {
	return &economyService{
		accountRepo:        accountRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
		startingBalance:    startingBalance,
	}
}

// GetOrCreateAccount retrieves an account, creating it lazily with the starting balance
func (s *economyService) GetOrCreateAccount(ctx context.Context, participantID int64) (*entities.Account, error) {
	account, err := s.accountRepo.GetByParticipantID(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account != nil {
		return account, nil
	}

	account, err = s.accountRepo.Create(ctx, participantID, s.startingBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	if s.startingBalance > 0 {
		history := &entities.BalanceHistory{
			ParticipantID:   participantID,
			BalanceBefore:   0,
			BalanceAfter:    s.startingBalance,
			ChangeAmount:    s.startingBalance,
			TransactionType: entities.TransactionTypeInitial,
		}
		if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
			return nil, fmt.Errorf("failed to record initial balance: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"participantID":  participantID,
		"initialBalance": s.startingBalance,
	}).Info("Created currency account")

	return account, nil
}

// Withdraw removes amount from an account
func (s *economyService) Withdraw(ctx context.Context, participantID, amount int64, txType entities.TransactionType, metadata map[string]any) (*entities.Account, error) {
	if amount <= 0 {
		return nil, entities.ErrInvalidAmount
	}

	account, err := s.GetOrCreateAccount(ctx, participantID)
	if err != nil {
		return nil, err
	}

	if !account.CanAfford(amount) {
		return nil, entities.ErrInsufficientFunds
	}

	newBalance := account.Balance - amount
	if err := s.accountRepo.UpdateBalance(ctx, participantID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	history := &entities.BalanceHistory{
		ParticipantID:       participantID,
		BalanceBefore:       account.Balance,
		BalanceAfter:        newBalance,
		ChangeAmount:        -amount,
		TransactionType:     txType,
		TransactionMetadata: metadata,
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return nil, fmt.Errorf("failed to record withdrawal: %w", err)
	}

	account.Balance = newBalance
	return account, nil
}

// Deposit adds amount to an account, creating the account if absent
func (s *economyService) Deposit(ctx context.Context, participantID, amount int64, txType entities.TransactionType, metadata map[string]any) (*entities.Account, error) {
	if amount < 0 {
		return nil, entities.ErrInvalidAmount
	}

	account, err := s.GetOrCreateAccount(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if amount == 0 {
		return account, nil
	}

	newBalance := account.Balance + amount
	if err := s.accountRepo.UpdateBalance(ctx, participantID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	history := &entities.BalanceHistory{
		ParticipantID:       participantID,
		BalanceBefore:       account.Balance,
		BalanceAfter:        newBalance,
		ChangeAmount:        amount,
		TransactionType:     txType,
		TransactionMetadata: metadata,
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	account.Balance = newBalance
	return account, nil
}
