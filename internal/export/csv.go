// Package export renders a user's full transaction history as a CSV backup.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"meusaldo/internal/domain/account"
	"meusaldo/internal/domain/caldate"
	"meusaldo/internal/domain/category"
	"meusaldo/internal/domain/transaction"
)

// utf8BOM lets spreadsheet applications detect the encoding of the
// accented Portuguese headers.
const utf8BOM = "\xEF\xBB\xBF"

var csvHeaders = []string{
	"ID", "Descrição", "Valor", "Data", "Vencimento", "Tipo",
	"Categoria", "Subcategoria", "Conta", "Pago", "Recorrente", "Parcelas",
}

// Filename returns the download name for a backup generated on the given day,
// e.g. meu_saldo_backup_2024-04-10.csv.
func Filename(day caldate.Date) string {
	return fmt.Sprintf("meu_saldo_backup_%s.csv", day.String())
}

// WriteCSV writes the user's transactions as a UTF-8 CSV with a BOM. ID
// references are resolved to names; dangling references render as empty
// cells. Commas inside descriptions are rewritten to periods so the file
// stays friendly to tools that split on commas naively.
func WriteCSV(w io.Writer, txs []transaction.Transaction, categories []category.Category, subcategories []category.Subcategory, accounts []account.Account) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}
	subcategoryNames := make(map[string]string, len(subcategories))
	for _, s := range subcategories {
		subcategoryNames[s.ID] = s.Name
	}
	accountNames := make(map[string]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range txs {
		row := []string{
			t.ID,
			strings.ReplaceAll(t.Description, ",", "."),
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
			t.Date.String(),
			dueDateCell(t.DueDate),
			t.Type,
			categoryNames[t.CategoryID],
			subcategoryNames[t.SubcategoryID],
			accountNames[t.AccountID],
			simNao(t.IsPaid),
			simNao(t.IsRecurring),
			installmentsCell(t.Installments),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func dueDateCell(d *caldate.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func simNao(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

func installmentsCell(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
