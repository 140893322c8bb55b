package services

import (
	"fmt"
	"sync"

	"github.com/arjunmehra/folio-tracker/backend/internal/repository"
)

// BalanceService manages the INR cash balance used for deposits and
// withdrawals alongside the investment ledger.
type BalanceService struct {
	repo repository.BalanceRepository
	mu   sync.Mutex
}

func NewBalanceService(repo repository.BalanceRepository) *BalanceService {
	return &BalanceService{repo: repo}
}

func (s *BalanceService) Get() (float64, error) {
	return s.repo.Get()
}

func (s *BalanceService) Deposit(amount float64) (float64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: deposit amount must be positive", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Get()
	if err != nil {
		return 0, err
	}
	next := current + amount
	if err := s.repo.Set(next); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return next, nil
}

func (s *BalanceService) Withdraw(amount float64) (float64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: withdrawal amount must be positive", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Get()
	if err != nil {
		return 0, err
	}
	if amount > current {
		return 0, fmt.Errorf("%w: have %.2f, tried to withdraw %.2f", ErrInsufficientFunds, current, amount)
	}
	next := current - amount
	if err := s.repo.Set(next); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return next, nil
}
