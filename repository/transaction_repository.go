package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/entity"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/apperr"
)

type TransactionRepository struct{ DB *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) Create(tx *gorm.DB, t *entity.Transaction) error {
	return tx.Create(t).Error
}

func (r *TransactionRepository) Get(id uint) (*entity.Transaction, error) {
	var t entity.Transaction
	if err := r.DB.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "transaction not found")
		}
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) GetByOrderID(orderID uint) (*entity.Transaction, error) {
	var t entity.Transaction
	err := r.DB.Where("order_id = ?", orderID).Order("id DESC").First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "transaction not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByGatewayRef is how inbound webhook events find their transaction.
func (r *TransactionRepository) GetByGatewayRef(ref string) (*entity.Transaction, error) {
	var t entity.Transaction
	err := r.DB.Where("gateway_ref = ?", ref).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.NotFound, "transaction not found for gateway reference")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) SetGatewayRef(tx *gorm.DB, id uint, ref string) error {
	return tx.Model(&entity.Transaction{}).Where("id = ?", id).Update("gateway_ref", ref).Error
}

// UpdateStatusGuard is the same conditional-update pattern orders use; it
// keeps duplicate webhook deliveries from double-flipping a transaction.
func (r *TransactionRepository) UpdateStatusGuard(tx *gorm.DB, id uint, from, to entity.TxStatus) (int64, error) {
	res := tx.Model(&entity.Transaction{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *TransactionRepository) AppendStatusLog(tx *gorm.DB, id uint, status entity.TxStatus) error {
	return tx.Create(&entity.TransactionStatusLog{TransactionID: id, Status: status}).Error
}

func (r *TransactionRepository) ListStatusLogs(id uint) ([]entity.TransactionStatusLog, error) {
	var rows []entity.TransactionStatusLog
	err := r.DB.Where("transaction_id = ?", id).Order("id").Find(&rows).Error
	return rows, err
}
