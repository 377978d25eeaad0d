package model

import "github.com/lib/pq"

type BusinessListing struct {
	ID            int64          `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	BusinessPhone string         `db:"business_phone" json:"businessPhone"`
	City          string         `db:"city" json:"city"`
	Address       string         `db:"address" json:"address"`
	Images        pq.StringArray `db:"images" json:"images"`
}
