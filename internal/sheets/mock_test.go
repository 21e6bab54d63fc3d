package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsolano/mail-ledger/internal/models"
)

func TestMockAppendAccumulates(t *testing.T) {
	mock := &Mock{}
	txs := []models.CategorizedTransaction{
		{Category: "Groceries", CategoryEmoji: "🛒"},
		{Category: "Other", CategoryEmoji: "❓"},
	}

	n, err := mock.Append(context.Background(), txs)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = mock.Append(context.Background(), txs[:1])
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, mock.Appended, 3)
}

func TestMockAppendError(t *testing.T) {
	mock := &Mock{AppendErr: errors.New("quota exceeded")}

	n, err := mock.Append(context.Background(), []models.CategorizedTransaction{{}})
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Empty(t, mock.Appended)
}
