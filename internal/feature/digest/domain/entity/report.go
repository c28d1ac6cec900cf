package entity

import "time"

// Report is a snapshot of catalog size and the most viewed products.
type Report struct {
	GeneratedAt time.Time
	Books       int64
	Categories  int64
	Products    int64
	TopViewed   []ViewedProduct
}

// ViewedProduct is one row of the most-viewed ranking.
type ViewedProduct struct {
	ID        uint
	Name      string
	ViewCount int
}
