package sheets

import (
	"context"

	"jsolano/mail-ledger/internal/models"
)

var (
	_ Appender = (*Mock)(nil)
	_ Appender = (*GoogleClient)(nil)
)

// Mock is an in-memory Appender for tests.
type Mock struct {
	Appended  []models.CategorizedTransaction
	AppendErr error
}

// Append records the transactions it was given.
func (m *Mock) Append(_ context.Context, transactions []models.CategorizedTransaction) (int, error) {
	if m.AppendErr != nil {
		return 0, m.AppendErr
	}
	m.Appended = append(m.Appended, transactions...)
	return len(transactions), nil
}
