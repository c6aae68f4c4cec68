package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/trade"
)

// DocumentModel holds the columns shared by sales and purchases
type DocumentModel struct {
	BaseModel
	ContactID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	FeedTypeID  *uuid.UUID      `gorm:"type:uuid"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount decimal.Decimal `gorm:"->;type:decimal(18,2)"`
	Status      string          `gorm:"type:varchar(16);not null;default:pending"`
	SeasonID    *uuid.UUID      `gorm:"type:uuid;index"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

func (m *DocumentModel) toDomain() trade.Document {
	return trade.Document{
		BaseEntity:  m.BaseModel.ToDomain(),
		ContactID:   m.ContactID,
		FeedTypeID:  m.FeedTypeID,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TotalAmount: m.TotalAmount,
		Status:      trade.DocumentStatus(m.Status),
		SeasonID:    m.SeasonID,
	}
}

func documentModelFromDomain(d trade.Document) DocumentModel {
	m := DocumentModel{
		ContactID:  d.ContactID,
		FeedTypeID: d.FeedTypeID,
		Quantity:   d.Quantity,
		UnitPrice:  d.UnitPrice,
		Status:     string(d.Status),
		SeasonID:   d.SeasonID,
	}
	m.FromDomainBaseEntity(d.BaseEntity)
	return m
}

// SaleModel is the persistence model for sales
type SaleModel struct {
	DocumentModel
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string { return "sales" }

// ToDomain converts to the domain sale
func (m *SaleModel) ToDomain() trade.Sale {
	return trade.Sale{Document: m.toDomain()}
}

// SaleModelFromDomain converts a domain sale
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	return &SaleModel{DocumentModel: documentModelFromDomain(s.Document)}
}

// PurchaseModel is the persistence model for purchases
type PurchaseModel struct {
	DocumentModel
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string { return "purchases" }

// ToDomain converts to the domain purchase
func (m *PurchaseModel) ToDomain() trade.Purchase {
	return trade.Purchase{Document: m.toDomain()}
}

// PurchaseModelFromDomain converts a domain purchase
func PurchaseModelFromDomain(p *trade.Purchase) *PurchaseModel {
	return &PurchaseModel{DocumentModel: documentModelFromDomain(p.Document)}
}

// DeliveryModel is the persistence model for deliveries
type DeliveryModel struct {
	BaseModel
	SaleID        *uuid.UUID      `gorm:"type:uuid;index"`
	PurchaseID    *uuid.UUID      `gorm:"type:uuid;index"`
	CarrierID     *uuid.UUID      `gorm:"type:uuid;index"`
	NetWeight     decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	FreightCost   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	FreightPaidBy string          `gorm:"type:varchar(16)"`
	PlateNumber   string          `gorm:"type:varchar(20)"`
	TicketNumber  string          `gorm:"type:varchar(50)"`
	SeasonID      *uuid.UUID      `gorm:"type:uuid;index"`
	DeliveryDate  time.Time       `gorm:"not null"`
	DeletedAt     gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for GORM
func (DeliveryModel) TableName() string { return "deliveries" }

// ToDomain converts to the domain delivery
func (m *DeliveryModel) ToDomain() trade.Delivery {
	return trade.Delivery{
		BaseEntity:    m.BaseModel.ToDomain(),
		SaleID:        m.SaleID,
		PurchaseID:    m.PurchaseID,
		CarrierID:     m.CarrierID,
		NetWeight:     m.NetWeight,
		FreightCost:   m.FreightCost,
		FreightPaidBy: trade.FreightPayer(m.FreightPaidBy),
		PlateNumber:   m.PlateNumber,
		TicketNumber:  m.TicketNumber,
		SeasonID:      m.SeasonID,
		DeliveryDate:  m.DeliveryDate,
	}
}

// DeliveryModelFromDomain converts a domain delivery
func DeliveryModelFromDomain(d *trade.Delivery) *DeliveryModel {
	m := &DeliveryModel{
		SaleID:        d.SaleID,
		PurchaseID:    d.PurchaseID,
		CarrierID:     d.CarrierID,
		NetWeight:     d.NetWeight,
		FreightCost:   d.FreightCost,
		FreightPaidBy: string(d.FreightPaidBy),
		PlateNumber:   d.PlateNumber,
		TicketNumber:  d.TicketNumber,
		SeasonID:      d.SeasonID,
		DeliveryDate:  d.DeliveryDate,
	}
	m.FromDomainBaseEntity(d.BaseEntity)
	return m
}

// FeedTypeModel is the persistence model for feed_types
type FeedTypeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (FeedTypeModel) TableName() string { return "feed_types" }

// ToDomain converts to the domain feed type
func (m *FeedTypeModel) ToDomain() trade.FeedType {
	return trade.FeedType{ID: m.ID, Name: m.Name}
}
