package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// ContactType classifies a trading counterparty
type ContactType string

const (
	ContactTypeSupplier ContactType = "supplier"
	ContactTypeCustomer ContactType = "customer"
	ContactTypeBoth     ContactType = "both"
)

// IsValid reports whether t is a known contact type
func (t ContactType) IsValid() bool {
	switch t {
	case ContactTypeSupplier, ContactTypeCustomer, ContactTypeBoth:
		return true
	}
	return false
}

// Contact is a supplier or customer. Contacts are only created by users.
type Contact struct {
	shared.BaseEntity
	Type    ContactType `json:"type"`
	Name    string      `json:"name"`
	Phone   string      `json:"phone,omitempty"`
	Email   string      `json:"email,omitempty"`
	Address string      `json:"address,omitempty"`
}

// NewContact validates and builds a contact
func NewContact(name string, t ContactType) (*Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "contact name cannot be empty")
	}
	if !t.IsValid() {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "invalid contact type")
	}
	return &Contact{
		BaseEntity: shared.NewBaseEntity(),
		Type:       t,
		Name:       name,
	}, nil
}

// ContactNames maps contact ids to display names
type ContactNames map[uuid.UUID]string
