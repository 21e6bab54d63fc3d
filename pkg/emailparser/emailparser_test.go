package emailparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsolano/mail-ledger/internal/models"
)

func TestParseEmail(t *testing.T) {
	email := models.RawEmail{
		ID:      "1",
		Subject: "Notificación de transacción AUTOMERCADO 15-03-2024",
		Sender:  "notificacion@notificacionesbaccr.com",
		BodyHTML: `<table><tr><td>Comercio:</td><td>AUTOMERCADO MORAVIA</td></tr>` +
			`<tr><td>Monto:</td><td>CRC 25,500.00</td></tr>` +
			`<tr><td>Fecha:</td><td>15-03-2024</td></tr></table>`,
	}

	tx, ok, err := ParseEmail(email)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "25500.00", tx.Amount.StringFixed(2))
	assert.Equal(t, "CRC", tx.Currency)
	assert.Equal(t, "AUTOMERCADO MORAVIA", tx.Merchant)
	assert.Equal(t, "2024-03-15", tx.Date)
	assert.Equal(t, "Groceries", tx.Category)
	assert.NoError(t, tx.Validate())
}

func TestParseEmailWithoutAmount(t *testing.T) {
	email := models.RawEmail{
		ID:       "2",
		Subject:  "Welcome",
		Sender:   "hello@example.com",
		BodyText: "Thanks for signing up.",
	}

	_, ok, err := ParseEmail(email)
	require.NoError(t, err)
	assert.False(t, ok)
}
