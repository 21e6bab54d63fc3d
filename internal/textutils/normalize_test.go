package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTableMarkup(t *testing.T) {
	raw := `<html><body><style>.h{color:red}</style>` +
		`<table><tr><td>Monto:</td><td>CRC 25,500.00</td></tr>` +
		`<tr><td>Comercio:</td><td>AUTOMERCADO MORAVIA</td></tr></table></body></html>`

	got := Normalize(raw)

	assert.Contains(t, got, "Monto: | CRC 25,500.00")
	assert.Contains(t, got, "Comercio: | AUTOMERCADO MORAVIA")
	assert.NotContains(t, got, "color:red")
	assert.NotContains(t, got, "<")
}

func TestNormalizePlainTextPassthrough(t *testing.T) {
	assert.Equal(t, "Monto: CRC 45,00", Normalize("Monto: CRC 45,00"))
	assert.Equal(t, "", Normalize(""))
}

func TestNormalizeEntities(t *testing.T) {
	assert.Equal(t, "Café & Bar", Normalize("Caf&eacute; &amp; Bar"))
	assert.Contains(t, Normalize("<p>Trader Joe&#39;s</p>"), "Trader Joe's")
}

func TestNormalizeLineBreaks(t *testing.T) {
	got := Normalize("<div>amount</div><br>value<p>end</p>")
	assert.Equal(t, "amount\nvalue end", got)
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := `<table><tr><td>Total:</td><td>$1,234.56</td></tr></table>`

	once := Normalize(raw)
	twice := Normalize(once)

	assert.Equal(t, once, twice)
}

func TestDecodeQuotedPrintable(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Escaped equals", "Monto =3D CRC 45,00", "Monto = CRC 45,00"},
		{"Soft line break", "25,5=\n00.00", "25,500.00"},
		{"Several hex escapes", "Fecha=0A15-03-2024=0AMonto=0ACRC", "Fecha\n15-03-2024\nMonto\nCRC"},
		{"Plain text untouched", "a = b and c=d", "a = b and c=d"},
		{"Empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DecodeQuotedPrintable(tc.input))
		})
	}
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", CollapseWhitespace("  a \t b \r\n\r\n   c  "))
}

func TestLooksLikeCSS(t *testing.T) {
	assert.True(t, LooksLikeCSS("@media screen { .body { width: 100% } }"))
	assert.True(t, LooksLikeCSS("  @import url(x.css);"))
	assert.False(t, LooksLikeCSS("Your purchase at AUTOMERCADO"))
	assert.False(t, LooksLikeCSS(""))
}
