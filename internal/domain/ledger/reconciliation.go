package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountReconciliation compares an account's denormalized totals with
// the totals recomputed from its transactions.
type AccountReconciliation struct {
	AccountID        uuid.UUID       `json:"account_id"`
	ContactID        uuid.UUID       `json:"contact_id"`
	StoredBalance    decimal.Decimal `json:"stored_balance"`
	StoredDebit      decimal.Decimal `json:"stored_debit"`
	StoredCredit     decimal.Decimal `json:"stored_credit"`
	ComputedBalance  decimal.Decimal `json:"computed_balance"`
	ComputedDebit    decimal.Decimal `json:"computed_debit"`
	ComputedCredit   decimal.Decimal `json:"computed_credit"`
	TransactionCount int             `json:"transaction_count"`
	Discrepancies    []string        `json:"discrepancies"`
}

// Consistent reports whether no discrepancy was found
func (r AccountReconciliation) Consistent() bool {
	return len(r.Discrepancies) == 0
}

// Reconcile checks balance = total_debit - total_credit and that the
// stored totals match the sum of the account's transactions.
func Reconcile(acc Account, txs []AccountTransaction) AccountReconciliation {
	debit, credit, signed := decimal.Zero, decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case TransactionDebit:
			debit = debit.Add(tx.Amount)
		case TransactionCredit:
			credit = credit.Add(tx.Amount)
		}
		signed = signed.Add(tx.Signed())
	}

	r := AccountReconciliation{
		AccountID:        acc.ID,
		ContactID:        acc.ContactID,
		StoredBalance:    acc.Balance,
		StoredDebit:      acc.TotalDebit,
		StoredCredit:     acc.TotalCredit,
		ComputedDebit:    debit,
		ComputedCredit:   credit,
		ComputedBalance:  signed,
		TransactionCount: len(txs),
		Discrepancies:    []string{},
	}

	if !acc.Balance.Equal(acc.TotalDebit.Sub(acc.TotalCredit)) {
		r.Discrepancies = append(r.Discrepancies, fmt.Sprintf(
			"balance %s != total_debit %s - total_credit %s", acc.Balance, acc.TotalDebit, acc.TotalCredit))
	}
	if !acc.TotalDebit.Equal(debit) {
		r.Discrepancies = append(r.Discrepancies, fmt.Sprintf(
			"total_debit %s != sum of debits %s", acc.TotalDebit, debit))
	}
	if !acc.TotalCredit.Equal(credit) {
		r.Discrepancies = append(r.Discrepancies, fmt.Sprintf(
			"total_credit %s != sum of credits %s", acc.TotalCredit, credit))
	}
	if !acc.Balance.Equal(r.ComputedBalance) {
		r.Discrepancies = append(r.Discrepancies, fmt.Sprintf(
			"balance %s != signed transaction sum %s", acc.Balance, r.ComputedBalance))
	}
	return r
}
