package metrics

import (
	"database/sql"
	"fmt"
	"time"

	models "churn-metrics-hub/database/models_pkg"

	"gorm.io/gorm"
)

// Repository is the read-only store accessor for daily churn metrics and
// churn-risk predictions. "No data" is a valid state everywhere: methods
// return empty slices or nil records, never an error, when an account has
// no rows.
type Repository struct {
	db   *gorm.DB
	pool *sql.DB
}

// NewRepository creates a new metrics repository. pool may be nil when the
// raw date-range query path is not needed (e.g. in tests).
func NewRepository(db *gorm.DB, pool *sql.DB) *Repository {
	return &Repository{db: db, pool: pool}
}

// InitSchema creates the metric tables if missing and applies migrations
func (r *Repository) InitSchema() error {
	fmt.Println("🔄 Starting database schema initialization...")

	// churn_data is written by an external ingestion process that may
	// predate this service, so the base table is managed manually and
	// missing columns are added idempotently.
	if err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS churn_data (
			id BIGSERIAL PRIMARY KEY,
			account_id VARCHAR(64) NOT NULL,
			date DATE NOT NULL,
			sales_volume DOUBLE PRECISION NOT NULL DEFAULT 0,
			receipt_count INTEGER NOT NULL DEFAULT 0,
			customer_traffic INTEGER NOT NULL DEFAULT 0,
			morning_receipts INTEGER,
			swing_receipts INTEGER,
			graveyard_receipts INTEGER,
			weekly_avg_sales DOUBLE PRECISION,
			weekly_avg_receipts DOUBLE PRECISION,
			sales_drop_pct DOUBLE PRECISION,
			transaction_drop_pct DOUBLE PRECISION,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create churn_data table: %w", err)
	}

	// Newer ingestion versions ship the drop columns; older databases don't
	r.db.Exec(`ALTER TABLE churn_data ADD COLUMN IF NOT EXISTS sales_drop_pct DOUBLE PRECISION`)
	r.db.Exec(`ALTER TABLE churn_data ADD COLUMN IF NOT EXISTS transaction_drop_pct DOUBLE PRECISION`)

	r.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_churn_data_account_date
		ON churn_data (account_id, date)
	`)

	if err := r.db.AutoMigrate(&models.ChurnPrediction{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	fmt.Println("✅ Database schema ready")
	return nil
}

// RecentMetrics retrieves up to limit daily rows for an account,
// most-recent-first. Returns an empty slice when the account has no rows.
func (r *Repository) RecentMetrics(accountID string, limit int) ([]models.ChurnMetric, error) {
	var rows []models.ChurnMetric
	query := r.db.Where("account_id = ?", accountID).Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("RecentMetrics: %w", err)
	}
	return rows, nil
}

// MetricsInRange retrieves daily rows for an account between start and end
// dates inclusive, oldest-first, through the raw pool.
func (r *Repository) MetricsInRange(accountID string, start, end time.Time) ([]models.ChurnMetric, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("MetricsInRange: raw pool not configured")
	}

	rows, err := r.pool.Query(`
		SELECT id, account_id, date, sales_volume, receipt_count, customer_traffic,
		       morning_receipts, swing_receipts, graveyard_receipts,
		       weekly_avg_sales, weekly_avg_receipts,
		       sales_drop_pct, transaction_drop_pct, created_at
		FROM churn_data
		WHERE account_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC`,
		accountID, start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("MetricsInRange: %w", err)
	}
	defer rows.Close()

	var result []models.ChurnMetric
	for rows.Next() {
		var m models.ChurnMetric
		if err := rows.Scan(
			&m.ID, &m.AccountID, &m.Date, &m.SalesVolume, &m.ReceiptCount, &m.CustomerTraffic,
			&m.MorningReceipts, &m.SwingReceipts, &m.GraveyardReceipts,
			&m.WeeklyAvgSales, &m.WeeklyAvgReceipts,
			&m.SalesDropPct, &m.TransactionDropPct, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("MetricsInRange scan: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("MetricsInRange rows: %w", err)
	}
	return result, nil
}

// LatestMetric retrieves the most recent daily row for an account.
// Returns nil (not an error) when the account has no rows.
func (r *Repository) LatestMetric(accountID string) (*models.ChurnMetric, error) {
	var row models.ChurnMetric
	err := r.db.Where("account_id = ?", accountID).Order("date DESC").First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("LatestMetric: %w", err)
	}
	return &row, nil
}

// LatestPrediction retrieves the most recent churn prediction for an account
// by creation timestamp. Returns nil (not an error) when none exists.
func (r *Repository) LatestPrediction(accountID string) (*models.ChurnPrediction, error) {
	var pred models.ChurnPrediction
	err := r.db.Where("account_id = ?", accountID).Order("created_at DESC").First(&pred).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("LatestPrediction: %w", err)
	}
	return &pred, nil
}
