package mapping

import (
	"github.com/pocketledger/pocket_ledger_app/internal/core/domain"
	"github.com/pocketledger/pocket_ledger_app/internal/models"
)

// ToModelTransaction converts a domain transaction for DB storage.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:           d.TransactionID,
		Type:                    models.TransactionType(d.Type),
		AccountID:               d.AccountID,
		SenderAccountID:         d.SenderAccountID,
		ReceiverAccountID:       d.ReceiverAccountID,
		Amount:                  d.Amount,
		Description:             d.Description,
		Status:                  models.TransactionStatus(d.Status),
		ReversedTransactionID:   d.ReversedTransactionID,
		ReversedByTransactionID: d.ReversedByTransactionID,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a DB transaction row to the domain representation.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:           m.TransactionID,
		Type:                    domain.TransactionType(m.Type),
		AccountID:               m.AccountID,
		SenderAccountID:         m.SenderAccountID,
		ReceiverAccountID:       m.ReceiverAccountID,
		Amount:                  m.Amount,
		Description:             m.Description,
		Status:                  domain.TransactionStatus(m.Status),
		ReversedTransactionID:   m.ReversedTransactionID,
		ReversedByTransactionID: m.ReversedByTransactionID,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of DB rows to domain transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
