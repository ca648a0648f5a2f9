package store

import "time"

// GORM models used for persistence.
type BookModel struct {
	ID     int64  `gorm:"primaryKey"`
	Title  string `gorm:"not null"`
	Author string `gorm:"not null"`
	ISBN   string `gorm:"column:isbn;uniqueIndex;not null"`
}

func (BookModel) TableName() string { return "books" }

type LoanModel struct {
	ID       int64 `gorm:"primaryKey"`
	Customer string
	BookID   int64     `gorm:"not null;index"`
	Book     BookModel `gorm:"foreignKey:BookID"`
	LoanDate time.Time `gorm:"not null"`
	Returned *bool
}

func (LoanModel) TableName() string { return "loans" }
