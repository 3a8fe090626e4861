package repository

import (
	"github.com/sangkips/beatlicense-api/internal/domain/report"
	"gorm.io/gorm"
)

// Between returns a GORM scope that keeps rows whose column lies inside the
// date range, both bounds included
func Between(column string, dr report.DateRange) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" >= ? AND "+column+" <= ?", dr.Start, dr.End)
	}
}

// Chronological orders rows by column and then by id so ties are stable
func Chronological(column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + " ASC").Order("id ASC")
	}
}
