package http

import (
	"html/template"
	"net/http"

	"financas/internal/core"
	applog "financas/internal/log"
	"financas/internal/report"
)

type summaryView struct {
	Income          string
	Expense         string
	Balance         string
	BalanceNegative bool
	Count           int
}

type categoryRow struct {
	Name   string
	Amount string
	Width  int
}

type monthRow struct {
	Month        string
	Income       string
	Expense      string
	IncomeWidth  int
	ExpenseWidth int
}

type txRow struct {
	Date        string
	Description string
	Amount      string
	Type        string
	Category    string
	Source      string
	Expense     bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		applog.FromContext(r.Context()).Error("Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	f := parseFilter(r)

	var months []string
	if txs, err := s.loadTransactions(r.Context()); err != nil {
		applog.FromContext(r.Context()).Error("Listing transactions failed", applog.FieldError, err)
	} else {
		months = report.Months(txs)
	}

	data := struct {
		Months     []string
		Categories []string
		Month      string
		Category   string
	}{
		Months:     months,
		Categories: s.classifier.AllCategories(),
		Month:      f.Month,
		Category:   f.Category,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		applog.FromContext(r.Context()).Error("Index template execution failed", applog.FieldError, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSummary renders income, expense and balance totals for the filter.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	f := parseFilter(r)
	view, err := s.getSummary(r, f)
	if err != nil {
		applog.FromContext(r.Context()).Error("Summary error", applog.FieldError, err,
			applog.FieldMonth, f.Month, applog.FieldCategory, f.Category)
		s.renderPartialError(w, "summary", "Erro carregando o resumo")
		return
	}

	s.renderPartial(w, r, "summary.html", view)
}

func (s *Server) getSummary(r *http.Request, f report.Filter) (summaryView, error) {
	key := filterKey(f)
	if view, found := s.summaryCache.Get(key); found {
		return view, nil
	}

	txs, err := s.loadTransactions(r.Context())
	if err != nil {
		return summaryView{}, err
	}

	filtered := f.Apply(txs)
	totals := report.Summarize(filtered)
	view := summaryView{
		Income:          formatBRL(totals.Income.Cents),
		Expense:         formatBRL(totals.Expense.Cents),
		Balance:         formatBRL(totals.Balance.Cents),
		BalanceNegative: totals.Balance.Cents < 0,
		Count:           len(filtered),
	}

	s.summaryCache.Set(key, view)
	return view, nil
}

// handleCategories renders the expense-by-category breakdown for the filter.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	f := parseFilter(r)
	txs, err := s.loadTransactions(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).Error("Category breakdown error", applog.FieldError, err)
		s.renderPartialError(w, "categories", "Erro carregando as categorias")
		return
	}

	byCat := report.ExpenseByCategory(f.Apply(txs))

	var maxCents int64
	for _, c := range byCat {
		if c.Amount.Cents > maxCents {
			maxCents = c.Amount.Cents
		}
	}

	data := struct {
		Rows []categoryRow
	}{}
	for _, c := range byCat {
		data.Rows = append(data.Rows, categoryRow{
			Name:   c.Name,
			Amount: formatBRL(c.Amount.Cents),
			Width:  barWidth(c.Amount.Cents, maxCents),
		})
	}

	s.renderPartial(w, r, "categories.html", data)
}

// handleMonthly renders the chronological income and expense series.
func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	f := parseFilter(r)
	txs, err := s.loadTransactions(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).Error("Monthly series error", applog.FieldError, err)
		s.renderPartialError(w, "monthly", "Erro carregando a série mensal")
		return
	}

	series := report.MonthlySeries(f.Apply(txs))

	var maxCents int64
	for _, m := range series {
		if m.Income.Cents > maxCents {
			maxCents = m.Income.Cents
		}
		if m.Expense.Cents > maxCents {
			maxCents = m.Expense.Cents
		}
	}

	data := struct {
		Rows []monthRow
	}{}
	for _, m := range series {
		data.Rows = append(data.Rows, monthRow{
			Month:        m.Month,
			Income:       formatBRL(m.Income.Cents),
			Expense:      formatBRL(m.Expense.Cents),
			IncomeWidth:  barWidth(m.Income.Cents, maxCents),
			ExpenseWidth: barWidth(m.Expense.Cents, maxCents),
		})
	}

	s.renderPartial(w, r, "monthly.html", data)
}

// handleTransactions renders the filtered listing, newest first.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	f := parseFilter(r)
	txs, err := s.loadTransactions(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).Error("Transaction listing error", applog.FieldError, err)
		s.renderPartialError(w, "transactions", "Erro carregando os lançamentos")
		return
	}

	listed := report.SortByDateDesc(f.Apply(txs))

	data := struct {
		Rows []txRow
	}{}
	for _, tx := range listed {
		data.Rows = append(data.Rows, txRow{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      formatBRL(tx.Amount.Cents),
			Type:        string(tx.Type),
			Category:    tx.Category,
			Source:      tx.Source,
			Expense:     tx.Type == core.Expense,
		})
	}

	s.renderPartial(w, r, "transactions.html", data)
}

// barWidth scales cents against the largest value as a rounded percent,
// clamped so tiny nonzero values stay visible.
func barWidth(cents, maxCents int64) int {
	if maxCents <= 0 || cents <= 0 {
		return 0
	}
	width := int((cents*100 + maxCents/2) / maxCents)
	if width > 0 && width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

func (s *Server) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		s.renderPartialError(w, name, "Templates não carregados")
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		applog.FromContext(r.Context()).Error("Template execution error", applog.FieldError, err, "template", name)
		s.renderPartialError(w, name, "Erro renderizando o painel")
	}
}

func (s *Server) renderPartialError(w http.ResponseWriter, section, msg string) {
	_, _ = w.Write([]byte(`<div class="placeholder" data-section="` + template.HTMLEscapeString(section) + `">` +
		template.HTMLEscapeString(msg) + `</div>`))
}
