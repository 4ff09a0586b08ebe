package models

import "time"

// ChurnMetric represents one account's observed retail metrics for one
// calendar date. Rows are produced by an external ingestion process and are
// immutable once recorded; this service only reads them.
//
// Key Fields:
//   - AccountID: The tenant/business the row belongs to (indexed)
//   - Date: The calendar date the metrics cover (unique per account)
//   - SalesVolume: Gross sales for the day (currency, >= 0)
//   - ReceiptCount: Number of receipts issued (>= 0)
//   - CustomerTraffic: Customers counted in store (>= 0)
//   - Morning/Swing/GraveyardReceipts: Optional per-shift receipt counts
//   - WeeklyAvgSales/WeeklyAvgReceipts: Optional trailing-week baselines
//   - SalesDropPct/TransactionDropPct: Optional precomputed drop signals
//
// Optional columns arrive as NULL from the ingestion side, so they are
// pointers here; derivers apply zero-defaulting at the store boundary.
type ChurnMetric struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID       string    `gorm:"size:64;index:idx_churn_data_account_date,unique;not null" json:"account_id"`
	Date            time.Time `gorm:"type:date;index:idx_churn_data_account_date,unique;not null" json:"date"`
	SalesVolume     float64   `gorm:"type:decimal(15,2);not null" json:"sales_volume"`
	ReceiptCount    int       `gorm:"not null" json:"receipt_count"`
	CustomerTraffic int       `gorm:"not null" json:"customer_traffic"`

	MorningReceipts   *int `gorm:"column:morning_receipts" json:"morning_receipts,omitempty"`
	SwingReceipts     *int `gorm:"column:swing_receipts" json:"swing_receipts,omitempty"`
	GraveyardReceipts *int `gorm:"column:graveyard_receipts" json:"graveyard_receipts,omitempty"`

	WeeklyAvgSales    *float64 `gorm:"type:decimal(15,2)" json:"weekly_avg_sales,omitempty"`
	WeeklyAvgReceipts *float64 `gorm:"type:decimal(10,2)" json:"weekly_avg_receipts,omitempty"`

	SalesDropPct       *float64 `gorm:"type:decimal(8,2)" json:"sales_drop_pct,omitempty"`
	TransactionDropPct *float64 `gorm:"type:decimal(8,2)" json:"transaction_drop_pct,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for ChurnMetric
func (ChurnMetric) TableName() string {
	return "churn_data"
}

// ChurnPrediction represents one churn-risk assessment for an account,
// produced by an external model. Multiple predictions may exist per account;
// every derivation consumes only the most recent one by CreatedAt.
//
// RiskPercentage is stored ambiguously upstream: some writers persist a
// 0-1 fraction, others a 0-100 percentage. Readers must normalize through
// analytics.NormalizePercent before using the value.
type ChurnPrediction struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID      string    `gorm:"size:64;index;not null" json:"account_id"`
	RiskPercentage float64   `gorm:"type:decimal(8,4);not null" json:"risk_percentage"`
	RiskLevel      string    `gorm:"size:20" json:"risk_level"` // Free text, matched case-insensitively
	Description    string    `gorm:"type:text" json:"description,omitempty"`
	Factors        string    `gorm:"type:text" json:"factors,omitempty"` // JSON-encoded explanatory factors
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for ChurnPrediction
func (ChurnPrediction) TableName() string {
	return "churn_predictions"
}
