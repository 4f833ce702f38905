package types

import "time"

// MonthlyCount is one month's bucket in a dashboard time series.
type MonthlyCount struct {
	Month time.Time `gorm:"column:month" json:"month"`
	Count int64     `gorm:"column:count" json:"count"`
}
