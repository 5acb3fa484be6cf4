package http

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"meusaldo/internal/domain/account"
	"meusaldo/internal/domain/caldate"
	"meusaldo/internal/domain/category"
	"meusaldo/internal/domain/transaction"
	"meusaldo/internal/export"
)

// ExportHandler streams the user's full history as a CSV backup.
type ExportHandler struct {
	transactions *transaction.Service
	accounts     *account.Service
	categories   *category.Service
	log          zerolog.Logger
	now          func() time.Time
}

// NewExportHandler creates a new export handler.
func NewExportHandler(transactions *transaction.Service, accounts *account.Service, categories *category.Service, log zerolog.Logger) *ExportHandler {
	return &ExportHandler{
		transactions: transactions,
		accounts:     accounts,
		categories:   categories,
		log:          log,
		now:          time.Now,
	}
}

// HandleExportCSV serves GET /api/export/csv.
func (h *ExportHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var txs []transaction.Transaction
	var cats []category.Category
	var subs []category.Subcategory
	var accs []account.Account

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		txs, err = h.transactions.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		cats, err = h.categories.ListCategories(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		subs, err = h.categories.ListSubcategories(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		accs, err = h.accounts.ListAccounts(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to load export data")
		http.Error(w, "Failed to export data", http.StatusInternalServerError)
		return
	}

	filename := export.Filename(caldate.FromTime(h.now()))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteCSV(w, txs, cats, subs, accs); err != nil {
		// Headers are already out; all we can do is log.
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to write CSV export")
	}
}
