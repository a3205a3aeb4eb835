package recorder

import (
	"gorm.io/gorm"

	"github.com/yanun0323/errors"
)

// SignalRecord is one terminal acknowledgment, persisted for audit.
type SignalRecord struct {
	gorm.Model
	SignalID  string `gorm:"index"`
	Symbol    string
	StockCode string
	Side      string
	Quantity  int64
	Price     string
	PriceType uint8
	Success   bool
	OrderID   string
	Message   string
}

// Recorder appends signal outcomes to the audit table. A nil Recorder is a
// no-op so the gateway can run without persistence.
type Recorder struct {
	db *gorm.DB
}

// New migrates the audit table and returns a recorder bound to db.
func New(db *gorm.DB) (*Recorder, error) {
	if err := db.AutoMigrate(&SignalRecord{}); err != nil {
		return nil, errors.Wrap(err, "migrate signal records")
	}
	return &Recorder{db: db}, nil
}

// Record appends one outcome row.
func (r *Recorder) Record(rec SignalRecord) error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Create(&rec).Error
}
