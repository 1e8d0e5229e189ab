package pricing

import "github.com/shopspring/decimal"

// Prefijo de moneda usado en toda la capa de presentación (PDF, UI).
const CurrencyPrefix = "Rs."

// FormatAmount formatea una cifra monetaria para presentación: prefijo de
// moneda y exactamente 2 decimales ("Rs. 1234.50"). Solo para mostrar;
// nunca se vuelve a parsear.
func FormatAmount(d decimal.Decimal) string {
	return CurrencyPrefix + " " + d.StringFixed(2)
}
