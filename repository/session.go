package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/CuCryptos/cruise-photos/model"
)

type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) List() ([]model.Session, error) {
	var sessions []model.Session
	if err := r.db.Order("cruise_date desc").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepo) FindByID(id uint) (*model.Session, error) {
	var session model.Session
	err := r.db.Preload("Tables").First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateWithTables inserts the session and, when tableCount > 0, one table
// per seat group labelled "Table 1..N". codeGen supplies candidate access
// codes; duplicates are retried inside the transaction before giving up.
func (r *SessionRepo) CreateWithTables(session *model.Session, tableCount int, codeGen func() string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		for i := 1; i <= tableCount; i++ {
			code, err := uniqueCode(tx, codeGen)
			if err != nil {
				return err
			}
			table := model.Table{
				SessionID:   session.ID,
				TableNumber: fmt.Sprintf("Table %d", i),
				AccessCode:  code,
			}
			if err := tx.Create(&table).Error; err != nil {
				return err
			}
			session.Tables = append(session.Tables, table)
		}
		return nil
	})
}

func uniqueCode(tx *gorm.DB, codeGen func() string) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		code := codeGen()
		var count int64
		if err := tx.Model(&model.Table{}).Where("access_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not generate a unique access code")
}
