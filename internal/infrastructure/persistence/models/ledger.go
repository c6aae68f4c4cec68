package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/ledger"
)

// ContactModel is the persistence model for contacts
type ContactModel struct {
	BaseModel
	Type      string         `gorm:"type:varchar(16);not null"`
	Name      string         `gorm:"type:varchar(200);not null"`
	Phone     string         `gorm:"type:varchar(50)"`
	Email     string         `gorm:"type:varchar(200)"`
	Address   string         `gorm:"type:text"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string { return "contacts" }

// ToDomain converts to the domain contact
func (m *ContactModel) ToDomain() *ledger.Contact {
	return &ledger.Contact{
		BaseEntity: m.BaseModel.ToDomain(),
		Type:       ledger.ContactType(m.Type),
		Name:       m.Name,
		Phone:      m.Phone,
		Email:      m.Email,
		Address:    m.Address,
	}
}

// ContactModelFromDomain converts a domain contact
func ContactModelFromDomain(c *ledger.Contact) *ContactModel {
	m := &ContactModel{
		Type:    string(c.Type),
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// AccountModel is the persistence model for accounts
type AccountModel struct {
	BaseModel
	ContactID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalDebit  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalCredit decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string { return "accounts" }

// ToDomain converts to the domain account
func (m *AccountModel) ToDomain() *ledger.Account {
	return &ledger.Account{
		BaseEntity:  m.BaseModel.ToDomain(),
		ContactID:   m.ContactID,
		Balance:     m.Balance,
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
	}
}

// AccountModelFromDomain converts a domain account
func AccountModelFromDomain(a *ledger.Account) *AccountModel {
	m := &AccountModel{
		ContactID:   a.ContactID,
		Balance:     a.Balance,
		TotalDebit:  a.TotalDebit,
		TotalCredit: a.TotalCredit,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// AccountTransactionModel is the persistence model for account_transactions
type AccountTransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type            string          `gorm:"type:varchar(8);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	BalanceAfter    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description     string          `gorm:"type:text"`
	ReferenceType   *string         `gorm:"type:varchar(16)"`
	ReferenceID     *uuid.UUID      `gorm:"type:uuid;index"`
	SeasonID        *uuid.UUID      `gorm:"type:uuid;index"`
	TransactionDate time.Time       `gorm:"not null"`
	CreatedAt       time.Time       `gorm:"not null"`
	DeletedAt       gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for GORM
func (AccountTransactionModel) TableName() string { return "account_transactions" }

// ToDomain converts to the domain transaction
func (m *AccountTransactionModel) ToDomain() ledger.AccountTransaction {
	tx := ledger.AccountTransaction{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Type:            ledger.TransactionType(m.Type),
		Amount:          m.Amount,
		BalanceAfter:    m.BalanceAfter,
		Description:     m.Description,
		ReferenceID:     m.ReferenceID,
		SeasonID:        m.SeasonID,
		TransactionDate: m.TransactionDate,
		CreatedAt:       m.CreatedAt,
	}
	if m.ReferenceType != nil {
		tx.ReferenceType = ledger.ReferenceType(*m.ReferenceType)
	}
	return tx
}

// AccountTransactionModelFromDomain converts a domain transaction
func AccountTransactionModelFromDomain(tx *ledger.AccountTransaction) *AccountTransactionModel {
	m := &AccountTransactionModel{
		ID:              tx.ID,
		AccountID:       tx.AccountID,
		Type:            string(tx.Type),
		Amount:          tx.Amount,
		BalanceAfter:    tx.BalanceAfter,
		Description:     tx.Description,
		ReferenceID:     tx.ReferenceID,
		SeasonID:        tx.SeasonID,
		TransactionDate: tx.TransactionDate,
		CreatedAt:       tx.CreatedAt,
	}
	if tx.ReferenceType != ledger.ReferenceNone {
		ref := string(tx.ReferenceType)
		m.ReferenceType = &ref
	}
	return m
}

// AccountSummaryRow is one row of v_account_summary or of the equivalent join
type AccountSummaryRow struct {
	ContactID   uuid.UUID
	ContactName string
	ContactType string
	AccountID   *uuid.UUID
	Balance     decimal.Decimal
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

// ToDomain converts to the domain summary
func (r AccountSummaryRow) ToDomain() ledger.AccountSummary {
	return ledger.AccountSummary{
		ContactID:   r.ContactID,
		ContactName: r.ContactName,
		ContactType: ledger.ContactType(r.ContactType),
		AccountID:   r.AccountID,
		Balance:     r.Balance,
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
	}
}
