package account

import "strings"

// heuristicChain is checked in priority order, first match wins. The
// order matters: "Loan Receivable" must classify as an asset, so the
// asset keywords (which include "receivable") are tried before the
// liability ones.
var heuristicChain = []struct {
	accountType Type
	keywords    []string
}{
	{TypeAsset, []string{"cash", "bank", "asset", "receivable", "inventory"}},
	{TypeLiability, []string{"liability", "payable", "loan"}},
	{TypeEquity, []string{"capital", "equity", "owner"}},
	{TypeRevenue, []string{"revenue", "income", "sales"}},
	{TypeExpense, []string{"expense", "salary", "rent"}},
}

// Classify infers an account type from its name using substring
// matching on the lower-cased name. Returns TypeUnknown when nothing
// matches; callers decide whether that is acceptable.
func Classify(name string) Type {
	lower := strings.ToLower(name)
	for _, rule := range heuristicChain {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.accountType
			}
		}
	}
	return TypeUnknown
}

// Resolver resolves an account name to its reporting type.
type Resolver interface {
	ResolveType(name string) Type
}

// HeuristicResolver resolves purely by name, with no directory backing.
// Used when reports are computed without a registered chart of accounts.
type HeuristicResolver struct{}

func (HeuristicResolver) ResolveType(name string) Type {
	return Classify(name)
}
