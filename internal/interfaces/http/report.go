package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"meusaldo/internal/domain/account"
	"meusaldo/internal/domain/caldate"
	"meusaldo/internal/domain/category"
	"meusaldo/internal/domain/transaction"
)

const defaultRecentLimit = 10

// ReportHandler aggregates transactions, accounts and categories into the
// dashboard and monthly report views.
type ReportHandler struct {
	transactions *transaction.Service
	accounts     *account.Service
	categories   *category.Service
	log          zerolog.Logger
	now          func() time.Time
}

// NewReportHandler creates a new report handler.
func NewReportHandler(transactions *transaction.Service, accounts *account.Service, categories *category.Service, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		transactions: transactions,
		accounts:     accounts,
		categories:   categories,
		log:          log,
		now:          time.Now,
	}
}

// DashboardResponse is the payload behind the home screen.
type DashboardResponse struct {
	Balance            float64                   `json:"balance"`
	MonthlyIncome      float64                   `json:"monthlyIncome"`
	MonthlyExpenses    float64                   `json:"monthlyExpenses"`
	RecentTransactions []transaction.Transaction `json:"recentTransactions"`
}

// MonthlyReportResponse is the payload behind the reports screen for one
// calendar month.
type MonthlyReportResponse struct {
	Year               int                         `json:"year"`
	Month              int                         `json:"month"`
	Income             float64                     `json:"income"`
	Expenses           float64                     `json:"expenses"`
	ExpensesByCategory []transaction.CategoryTotal `json:"expensesByCategory"`
	Transactions       []transaction.Transaction   `json:"transactions"`
}

// HandleDashboard serves GET /api/reports/dashboard. Balance is computed as
// of today; the month defaults to the current one.
func (h *ReportHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	today := caldate.FromTime(h.now())
	year, month, ok := h.monthParams(w, r, today)
	if !ok {
		return
	}

	limit := defaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	var txs []transaction.Transaction
	var accs []account.Account
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		txs, err = h.transactions.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		accs, err = h.accounts.ListAccounts(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to load dashboard data")
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	recent := transaction.RecentTransactions(txs, today, limit)
	if recent == nil {
		recent = []transaction.Transaction{}
	}

	writeJSON(w, http.StatusOK, DashboardResponse{
		Balance:            transaction.ComputeBalance(accs, txs, today),
		MonthlyIncome:      transaction.MonthlyIncome(txs, year, month),
		MonthlyExpenses:    transaction.MonthlyExpenses(txs, year, month),
		RecentTransactions: recent,
	})
}

// HandleMonthlyReport serves GET /api/reports/monthly?year=&month=.
func (h *ReportHandler) HandleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUser(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	today := caldate.FromTime(h.now())
	year, month, ok := h.monthParams(w, r, today)
	if !ok {
		return
	}

	var txs []transaction.Transaction
	var cats []category.Category
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() (err error) {
		txs, err = h.transactions.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		cats, err = h.categories.ListCategories(ctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("failed to load report data")
		http.Error(w, "Failed to load report", http.StatusInternalServerError)
		return
	}

	inMonth := transaction.FilterByMonth(txs, year, month)
	if inMonth == nil {
		inMonth = []transaction.Transaction{}
	}
	byCategory := transaction.ExpensesByCategory(txs, cats, year, month)
	if byCategory == nil {
		byCategory = []transaction.CategoryTotal{}
	}

	writeJSON(w, http.StatusOK, MonthlyReportResponse{
		Year:               year,
		Month:              month,
		Income:             transaction.MonthlyIncome(txs, year, month),
		Expenses:           transaction.MonthlyExpenses(txs, year, month),
		ExpensesByCategory: byCategory,
		Transactions:       inMonth,
	})
}

// monthParams reads the optional year/month query parameters, defaulting to
// today's month. Returns ok=false after writing an error response.
func (h *ReportHandler) monthParams(w http.ResponseWriter, r *http.Request, today caldate.Date) (int, int, bool) {
	year, month := today.Year, today.Month

	if v := r.URL.Query().Get("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "Invalid year", http.StatusBadRequest)
			return 0, 0, false
		}
		year = n
	}
	if v := r.URL.Query().Get("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			http.Error(w, "Invalid month", http.StatusBadRequest)
			return 0, 0, false
		}
		month = n
	}
	return year, month, true
}
