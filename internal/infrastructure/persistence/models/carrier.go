package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/carrier"
)

// CarrierModel is the persistence model for carriers
type CarrierModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Phone     string    `gorm:"type:varchar(50)"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (CarrierModel) TableName() string { return "carriers" }

// ToDomain converts to the domain carrier
func (m *CarrierModel) ToDomain() carrier.Carrier {
	return carrier.Carrier{ID: m.ID, Name: m.Name, Phone: m.Phone}
}

// CarrierTransactionModel is the persistence model for carrier_transactions
type CarrierTransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	CarrierID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            string          `gorm:"type:varchar(16);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SeasonID        *uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryID      *uuid.UUID      `gorm:"type:uuid"`
	Description     string          `gorm:"type:text"`
	TransactionDate time.Time       `gorm:"not null"`
	CreatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (CarrierTransactionModel) TableName() string { return "carrier_transactions" }

// ToDomain converts to the domain carrier transaction
func (m *CarrierTransactionModel) ToDomain() carrier.Transaction {
	return carrier.Transaction{
		ID:              m.ID,
		CarrierID:       m.CarrierID,
		Type:            carrier.TransactionType(m.Type),
		Amount:          m.Amount,
		SeasonID:        m.SeasonID,
		DeliveryID:      m.DeliveryID,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
	}
}

// CarrierBalanceRow is one row of v_carrier_balance or its fallback aggregation
type CarrierBalanceRow struct {
	CarrierID    uuid.UUID
	CarrierName  string
	TotalFreight decimal.Decimal
	TotalPaid    decimal.Decimal
	Balance      decimal.Decimal
}

// ToDomain converts to the domain balance
func (r CarrierBalanceRow) ToDomain() carrier.Balance {
	return carrier.Balance{
		CarrierID:    r.CarrierID,
		CarrierName:  r.CarrierName,
		TotalFreight: r.TotalFreight,
		TotalPaid:    r.TotalPaid,
		Balance:      r.Balance,
	}
}
