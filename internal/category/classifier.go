// Package category assigns a {type, category} pair to a transaction from its
// description and signed amount. Classification is a pure keyword lookup over
// ordered rule tables, so identical inputs always give identical answers.
package category

import (
	"strings"

	"financas/internal/core"
)

// Other is the fallback tag assigned when no keyword matches.
const Other = "other"

// Rule binds a category tag to the keywords that select it. Rules are
// evaluated in slice order and the first matching rule wins.
type Rule struct {
	Category string
	Keywords []string
}

// Classifier holds one rule table per transaction type.
type Classifier struct {
	income  []Rule
	expense []Rule
}

func New(income, expense []Rule) *Classifier {
	return &Classifier{income: income, expense: expense}
}

// NewDefault returns a classifier with the built-in rule tables.
func NewDefault() *Classifier {
	return New(defaultIncomeRules(), defaultExpenseRules())
}

func defaultIncomeRules() []Rule {
	return []Rule{
		{Category: "salary", Keywords: []string{"salario", "salário", "vencimento", "pagamento"}},
		{Category: "freelance", Keywords: []string{"freelance", "freela", "projeto", "consultoria"}},
		{Category: "investment", Keywords: []string{"dividendo", "rendimento", "juros", "investimento"}},
		{Category: Other, Keywords: []string{"transferencia", "pix recebido", "deposito"}},
	}
}

func defaultExpenseRules() []Rule {
	return []Rule{
		{Category: "food", Keywords: []string{"restaurante", "ifood", "rappi", "uber eats", "mercado", "supermercado", "padaria"}},
		{Category: "transport", Keywords: []string{"uber", "99", "gasolina", "combustivel", "estacionamento", "pedagio"}},
		{Category: "housing", Keywords: []string{"aluguel", "condominio", "luz", "agua", "gas", "internet"}},
		{Category: "health", Keywords: []string{"farmacia", "medico", "hospital", "plano de saude", "consulta"}},
		{Category: "education", Keywords: []string{"escola", "faculdade", "curso", "livro", "udemy"}},
		{Category: "leisure", Keywords: []string{"cinema", "netflix", "spotify", "amazon prime", "show", "viagem"}},
		{Category: "shopping", Keywords: []string{"amazon", "mercado livre", "magazine", "loja", "shopping"}},
		{Category: Other, Keywords: []string{"saque", "transferencia", "pix enviado"}},
	}
}

// Classify returns the type and category for a description and the signed
// cents value as it came off the statement line. The sign decides the type:
// zero and positive amounts are income, negative amounts are expense. The
// lower-cased description is then matched against that type's rules in table
// order; the first rule containing any keyword wins, otherwise "other".
func (c *Classifier) Classify(description string, signedCents int64) (core.TxType, string) {
	typ := core.Income
	rules := c.income
	if signedCents < 0 {
		typ = core.Expense
		rules = c.expense
	}

	desc := strings.ToLower(description)
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(desc, kw) {
				return typ, rule.Category
			}
		}
	}
	return typ, Other
}

// Categories lists the category tags valid for a type, in table order.
// The fallback "other" is always included.
func (c *Classifier) Categories(typ core.TxType) []string {
	rules := c.income
	if typ == core.Expense {
		rules = c.expense
	}
	out := make([]string, 0, len(rules)+1)
	seen := map[string]struct{}{}
	for _, rule := range rules {
		if _, ok := seen[rule.Category]; ok {
			continue
		}
		seen[rule.Category] = struct{}{}
		out = append(out, rule.Category)
	}
	if _, ok := seen[Other]; !ok {
		out = append(out, Other)
	}
	return out
}

// AllCategories lists every known tag across both types, deduplicated,
// income tags first. Used to populate the dashboard category filter.
func (c *Classifier) AllCategories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, name := range append(c.Categories(core.Income), c.Categories(core.Expense)...) {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
