package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
)

type GormLedgerRepository struct {
	db *gorm.DB
}

func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

func (r *GormLedgerRepository) Append(tx *models.Transaction) error {
	return r.db.Create(tx).Error
}

func (r *GormLedgerRepository) All() ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := r.db.Order("seq ASC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

type GormSnapshotRepository struct {
	db *gorm.DB
}

func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

func (r *GormSnapshotRepository) Upsert(snap *models.PortfolioSnapshot) error {
	var existing models.PortfolioSnapshot
	err := r.db.Where("date = ?", snap.Date).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		snap.CreatedAt = time.Now()
		return r.db.Create(snap).Error
	case err != nil:
		return err
	}
	snap.ID = existing.ID
	snap.CreatedAt = existing.CreatedAt
	return r.db.Save(snap).Error
}

func (r *GormSnapshotRepository) List() ([]models.PortfolioSnapshot, error) {
	var snaps []models.PortfolioSnapshot
	if err := r.db.Order("date ASC").Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

func (r *GormSnapshotRepository) Prune(keep int) error {
	var count int64
	if err := r.db.Model(&models.PortfolioSnapshot{}).Count(&count).Error; err != nil {
		return err
	}
	excess := count - int64(keep)
	if excess <= 0 {
		return nil
	}
	var oldest []models.PortfolioSnapshot
	if err := r.db.Order("date ASC").Limit(int(excess)).Find(&oldest).Error; err != nil {
		return err
	}
	ids := make([]uint, len(oldest))
	for i, s := range oldest {
		ids[i] = s.ID
	}
	return r.db.Delete(&models.PortfolioSnapshot{}, ids).Error
}

type GormBalanceRepository struct {
	db *gorm.DB
}

func NewGormBalanceRepository(db *gorm.DB) *GormBalanceRepository {
	return &GormBalanceRepository{db: db}
}

func (r *GormBalanceRepository) Get() (float64, error) {
	var bal models.Balance
	err := r.db.First(&bal, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return bal.Amount, nil
}

func (r *GormBalanceRepository) Set(amount float64) error {
	bal := models.Balance{ID: 1, Amount: amount, UpdatedAt: time.Now()}
	return r.db.Save(&bal).Error
}
