package reminder

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"meusaldo/internal/domain/transaction"
)

// MissingPixLabel is substituted for {pix} when the user has no PIX key saved.
const MissingPixLabel = "Não informada"

var brlPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount the way the rest of the app shows money,
// e.g. 1234.5 -> "R$ 1.234,50".
func FormatBRL(amount float64) string {
	return brlPrinter.Sprintf("R$ %v", number.Decimal(amount,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// BuildDueTomorrowSummary builds the WhatsApp summary of the user's debits
// due tomorrow. One message covers all of them.
func BuildDueTomorrowSummary(debits []transaction.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Lembrete de Vencimento!*\n\nVocê tem %d débito(s) com vencimento amanhã:\n", len(debits))
	for _, t := range debits {
		fmt.Fprintf(&b, "\n- *%s*", t.Description)
		b.WriteString("\n  Vencimento: amanhã")
		fmt.Fprintf(&b, "\n  Valor: %s\n", FormatBRL(t.Amount))
	}
	return b.String()
}

// BuildPaymentReminder fills the user's template for a single credit,
// replacing the {nome}, {valor} and {pix} placeholders.
func BuildPaymentReminder(template string, t transaction.Transaction, pixKey string) string {
	if pixKey == "" {
		pixKey = MissingPixLabel
	}
	msg := strings.ReplaceAll(template, "{nome}", t.CreditorName)
	msg = strings.ReplaceAll(msg, "{valor}", FormatBRL(t.Amount))
	return strings.ReplaceAll(msg, "{pix}", pixKey)
}
