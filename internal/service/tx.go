package service

import "gorm.io/gorm"

// rollback discards a transaction if one is open.
func rollback(tx *gorm.DB) {
	if tx != nil {
		tx.Rollback()
	}
}

// commit finalizes a transaction if one is open.
func commit(tx *gorm.DB) error {
	if tx == nil {
		return nil
	}
	return tx.Commit().Error
}
