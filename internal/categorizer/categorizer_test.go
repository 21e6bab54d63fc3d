package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
	"jsolano/mail-ledger/internal/store"
)

func testCategories() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: "Food & Dining", Emoji: "🍽️", Keywords: []string{"restaurant", "coffee", "starbucks"}},
		{Name: "Groceries", Emoji: "🛒", Keywords: []string{"supermarket", "automercado"}},
		{Name: "Shopping", Emoji: "🛍️", Keywords: []string{"store", "shop"}},
	}
}

func TestCategorize(t *testing.T) {
	c := New(testCategories(), logging.NewMockLogger())

	tests := []struct {
		name          string
		merchant      string
		rawText       string
		expected      string
		expectedEmoji string
	}{
		{"Merchant keyword", "AUTOMERCADO MORAVIA", "", "Groceries", "🛒"},
		{"Two keywords beat one", "STARBUCKS COFFEE STORE", "", "Food & Dining", "🍽️"},
		{"Case insensitive", "starbucks", "", "Food & Dining", "🍽️"},
		{"Raw text hit", "XYZ 123", "purchase at a restaurant downtown", "Food & Dining", "🍽️"},
		{"No hits fall back", "ACME WIDGETS", "nothing relevant", models.CategoryOther, models.CategoryOtherEmoji},
		{"Empty record", "", "", models.CategoryOther, models.CategoryOtherEmoji},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Categorize(models.TransactionRecord{Merchant: tc.merchant, RawText: tc.rawText})
			assert.Equal(t, tc.expected, got.Category)
			assert.Equal(t, tc.expectedEmoji, got.CategoryEmoji)
		})
	}
}

// Equal scores keep the earlier category, so table order is a stable
// tie-breaker.
func TestCategorizeTieKeepsEarlier(t *testing.T) {
	c := New(testCategories(), logging.NewMockLogger())

	got := c.Categorize(models.TransactionRecord{Merchant: "coffee shop"})
	assert.Equal(t, "Food & Dining", got.Category)
}

func TestCategorizeKeepsRecord(t *testing.T) {
	c := New(testCategories(), logging.NewMockLogger())

	record := models.TransactionRecord{
		EmailID:  "5",
		Merchant: "STARBUCKS",
		Type:     models.TypeDebit,
	}
	got := c.Categorize(record)

	assert.Equal(t, record, got.TransactionRecord)
}

func TestCategorizeAll(t *testing.T) {
	c := New(testCategories(), logging.NewMockLogger())

	records := []models.TransactionRecord{
		{Merchant: "AUTOMERCADO"},
		{Merchant: "UNKNOWN PLACE"},
	}
	got := c.CategorizeAll(records)

	require.Len(t, got, 2)
	assert.Equal(t, "Groceries", got[0].Category)
	assert.Equal(t, models.CategoryOther, got[1].Category)
}

// The embedded default table must categorize the common cases the keyword
// lists were written for.
func TestCategorizeDefaultTable(t *testing.T) {
	tables, err := store.LoadDefault()
	require.NoError(t, err)
	c := New(tables.Categories(), logging.NewMockLogger())

	tests := []struct {
		merchant string
		expected string
	}{
		{"STARBUCKS COFFEE #1234", "Food & Dining"},
		{"AUTOMERCADO MORAVIA", "Groceries"},
		{"UBER TRIP HELP.UBER.COM", "Transportation"},
		{"NETFLIX.COM", "Entertainment"},
		{"FARMACIA SUCRE", "Healthcare"},
		{"ZZZZZ", "Other"},
	}

	for _, tc := range tests {
		t.Run(tc.merchant, func(t *testing.T) {
			got := c.Categorize(models.TransactionRecord{Merchant: tc.merchant})
			assert.Equal(t, tc.expected, got.Category)
		})
	}
}
