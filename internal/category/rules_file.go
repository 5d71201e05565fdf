package category

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"financas/internal/core"
)

// NewFromFile loads rule tables from a plain-text rules file, falling back to
// the built-in tables when the file does not exist. One rule per line:
//
//	income;salary;salario,salário,vencimento
//	expense;food;restaurante,ifood
//
// Blank lines and lines starting with "#" are ignored. Rule order in the file
// is match order.
func NewFromFile(path string) (*Classifier, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), nil
		}
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer f.Close()

	var income, expense []Rule
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ";", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("rules file %s line %d: want type;category;keywords", path, lineNo)
		}
		typ := core.TxType(strings.TrimSpace(strings.ToLower(parts[0])))
		cat := strings.TrimSpace(strings.ToLower(parts[1]))
		if !typ.Valid() || cat == "" {
			return nil, fmt.Errorf("rules file %s line %d: invalid type or category", path, lineNo)
		}
		var keywords []string
		for _, kw := range strings.Split(parts[2], ",") {
			kw = strings.TrimSpace(strings.ToLower(kw))
			if kw != "" {
				keywords = append(keywords, kw)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("rules file %s line %d: no keywords", path, lineNo)
		}
		rule := Rule{Category: cat, Keywords: keywords}
		if typ == core.Income {
			income = append(income, rule)
		} else {
			expense = append(expense, rule)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	if len(income) == 0 && len(expense) == 0 {
		return NewDefault(), nil
	}
	return New(income, expense), nil
}
