// Package entity defines the domain models for the catalog feature.
package entity

import "time"

// Category is a node of the category tree. A nil ParentID marks a root.
// Children are found by querying parent_id, never through a back-reference.
type Category struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:255;uniqueIndex;not null"`
	ParentID  *uint     `gorm:"index"`
	Parent    *Category `gorm:"foreignKey:ParentID"`
	ImagePath *string   `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryInput carries the client-writable fields of a Category.
// ImagePath is only ever set by the upload pipeline.
type CategoryInput struct {
	Name     string
	ParentID *uint
}
