package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses space runs within a line",
			input: "TOTAL:    121,00",
			want:  "TOTAL: 121,00",
		},
		{
			name:  "normalizes windows line endings",
			input: "FACTURA\r\nTOTAL",
			want:  "FACTURA\nTOTAL",
		},
		{
			name:  "rejoins split digit groups",
			input: "TOTAL: 1 234,56",
			want:  "TOTAL: 1234,56",
		},
		{
			name:  "rejoins repeatedly split digit groups",
			input: "IMPORTE 1 234 567",
			want:  "IMPORTE 1234567",
		},
		{
			name:  "strips space before euro sign",
			input: "TOTAL: 100,00 €",
			want:  "TOTAL: 100,00€",
		},
		{
			name:  "strips space after euro sign",
			input: "€ 100,00",
			want:  "€100,00",
		},
		{
			name:  "preserves line structure",
			input: "linea uno\nlinea   dos\nlinea tres",
			want:  "linea uno\nlinea dos\nlinea tres",
		},
		{
			name:  "does not join two-digit groups",
			input: "tel 91 22",
			want:  "tel 91 22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestParseAmount(t *testing.T) {
	floatPtr := func(f float64) *float64 { return &f }

	tests := []struct {
		want  *float64
		name  string
		input string
	}{
		{name: "spanish notation", input: "1.234,56", want: floatPtr(1234.56)},
		{name: "us notation", input: "1,234.56", want: floatPtr(1234.56)},
		{name: "bare comma decimal", input: "123,45", want: floatPtr(123.45)},
		{name: "plain integer", input: "100", want: floatPtr(100)},
		{name: "plain decimal", input: "100.50", want: floatPtr(100.50)},
		{name: "euro sign stripped", input: "121,00€", want: floatPtr(121)},
		{name: "spanish thousands without decimals", input: "1.234", want: floatPtr(1234)},
		{name: "negative rejected", input: "-50,00", want: nil},
		{name: "not a number", input: "abc", want: nil},
		{name: "empty", input: "", want: nil},
		{name: "mixed garbage", input: "12,34,56", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.InDelta(t, *tt.want, *got, 0.001)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "slash numeric", input: "15/01/2024", want: "2024-01-15", wantOK: true},
		{name: "dash numeric", input: "15-01-2024", want: "2024-01-15", wantOK: true},
		{name: "dot numeric", input: "15.01.2024", want: "2024-01-15", wantOK: true},
		{name: "two digit year", input: "15/01/24", want: "2024-01-15", wantOK: true},
		{name: "spanish month name", input: "15 de enero de 2024", want: "2024-01-15", wantOK: true},
		{name: "spanish month without de", input: "3 marzo 2023", want: "2023-03-03", wantOK: true},
		{name: "spanish month del year", input: "1 de mayo del 2022", want: "2022-05-01", wantOK: true},
		{name: "impossible day", input: "31/02/2024", wantOK: false},
		{name: "month out of range", input: "15/13/2024", wantOK: false},
		{name: "unknown month name", input: "15 de frimario de 2024", wantOK: false},
		{name: "not a date", input: "mañana", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestYearInRange(t *testing.T) {
	assert.True(t, YearInRange("2024-01-15"))
	assert.True(t, YearInRange("2000-01-01"))
	assert.True(t, YearInRange("2100-12-31"))
	assert.False(t, YearInRange("1999-12-31"))
	assert.False(t, YearInRange("2101-01-01"))
	assert.False(t, YearInRange(""))
}
