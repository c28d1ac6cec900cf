// Package entity defines the domain models for the books feature.
package entity

import "time"

// Book is a catalog entry with no relations to other entities.
type Book struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;index;not null"`
	Author      string `gorm:"size:255;index;not null"`
	Description string `gorm:"type:text"`
	Year        int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookInput carries the client-writable fields of a Book.
type BookInput struct {
	Title       string
	Author      string
	Description string
	Year        int
}
