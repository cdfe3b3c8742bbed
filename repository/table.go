package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/CuCryptos/cruise-photos/model"
)

type TableRepo struct {
	db *gorm.DB
}

func NewTableRepo(db *gorm.DB) *TableRepo {
	return &TableRepo{db: db}
}

// FindByAccessCode resolves a guest access code to its table, parent session
// and photos. Codes are matched upper-case; lookup is the sole guest entry.
func (r *TableRepo) FindByAccessCode(code string) (*model.Table, error) {
	var table model.Table
	err := r.db.
		Preload("Session").
		Preload("Photos").
		Where("access_code = ?", strings.ToUpper(code)).
		First(&table).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *TableRepo) FindByID(id uint) (*model.Table, error) {
	var table model.Table
	err := r.db.Preload("Session").First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *TableRepo) ListBySession(sessionID uint) ([]model.Table, error) {
	var tables []model.Table
	if err := r.db.Where("session_id = ?", sessionID).Order("table_number").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

// Create inserts a table with a collision-checked access code from codeGen.
func (r *TableRepo) Create(table *model.Table, codeGen func() string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		code, err := uniqueCode(tx, codeGen)
		if err != nil {
			return err
		}
		table.AccessCode = code
		return tx.Create(table).Error
	})
}
