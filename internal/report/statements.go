package report

import (
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/journal"
)

// Result labels for the income statement's bottom line.
const (
	LabelNetIncome = "Net Income"
	LabelNetLoss   = "Net Loss"
)

// Synthetic equity line labels for the balance sheet's net income
// roll-up.
const (
	LabelAddNetIncome = "Add: Net Income"
	LabelLessNetLoss  = "Less: Net Loss"
)

// LineItem is one account row in a statement section. Amounts are
// unsigned; the section implies the sign.
type LineItem struct {
	Account string          `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}

// IncomeStatement reports net revenue and expense per account over a
// period. NetIncome is signed; Label says which way to read it and
// display layers show the absolute value.
type IncomeStatement struct {
	Revenues     []LineItem      `json:"revenues"`
	Expenses     []LineItem      `json:"expenses"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetIncome    decimal.Decimal `json:"net_income"`
	Label        string          `json:"label"`
}

// BalanceSheet classifies account balances into the accounting
// equation's three buckets, with the period's net income injected into
// equity as a synthetic line.
type BalanceSheet struct {
	Assets           []LineItem      `json:"assets"`
	Liabilities      []LineItem      `json:"liabilities"`
	Equity           []LineItem      `json:"equity"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	TotalEquity      decimal.Decimal `json:"total_equity"`
	Balanced         bool            `json:"balanced"`
}

// accountNet holds per-account debit/credit sums plus the first
// explicit category seen on any of its postings.
type accountNet struct {
	debits   decimal.Decimal
	credits  decimal.Decimal
	category account.Type
}

// netByAccount groups postings by account and sums each side. Order of
// account names is name-ascending for deterministic statement rows.
func netByAccount(postings []Posting) (map[string]*accountNet, []string) {
	nets := make(map[string]*accountNet)
	for _, p := range postings {
		n, ok := nets[p.Account]
		if !ok {
			n = &accountNet{debits: decimal.Zero, credits: decimal.Zero}
			nets[p.Account] = n
		}
		n.debits = n.debits.Add(p.Debit)
		n.credits = n.credits.Add(p.Credit)
		if !n.category.Known() && p.Category.Known() {
			n.category = p.Category
		}
	}

	names := make([]string, 0, len(nets))
	for name := range nets {
		names = append(names, name)
	}
	sort.Strings(names)
	return nets, names
}

// ComputeIncomeStatement partitions in-range postings into revenue and
// expense accounts. Per-account amounts use the net convention: revenue
// is credits minus debits, expense is debits minus credits. Accounts
// with no classification are excluded. NetIncome = revenue − expense,
// labeled "Net Income" when >= 0, "Net Loss" otherwise.
func ComputeIncomeStatement(
	logger *slog.Logger,
	entries []*journal.Entry,
	resolver account.Resolver,
	filter journal.DateFilter,
) *IncomeStatement {
	postings := Flatten(logger, entries, filter)
	nets, names := netByAccount(postings)

	is := &IncomeStatement{
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, name := range names {
		n := nets[name]
		switch classify(name, n.category, resolver) {
		case account.TypeRevenue:
			amount := n.credits.Sub(n.debits)
			is.Revenues = append(is.Revenues, LineItem{Account: name, Amount: amount})
			is.TotalRevenue = is.TotalRevenue.Add(amount)
		case account.TypeExpense:
			amount := n.debits.Sub(n.credits)
			is.Expenses = append(is.Expenses, LineItem{Account: name, Amount: amount})
			is.TotalExpense = is.TotalExpense.Add(amount)
		}
	}

	is.NetIncome = is.TotalRevenue.Sub(is.TotalExpense)
	if is.NetIncome.IsNegative() {
		is.Label = LabelNetLoss
	} else {
		is.Label = LabelNetIncome
	}
	return is
}

// ComputeBalanceSheet buckets account balances into assets, liabilities
// and equity. Displayed amounts are |debits − credits|; the bucket
// implies the sign. Net income for the same range is recomputed through
// the income statement logic and added to equity as a synthetic line, so
// the accounting equation closes. Accounts with no classification are
// silently excluded (they still show up in ledger and trial balance).
func ComputeBalanceSheet(
	logger *slog.Logger,
	entries []*journal.Entry,
	resolver account.Resolver,
	filter journal.DateFilter,
) *BalanceSheet {
	postings := Flatten(logger, entries, filter)
	nets, names := netByAccount(postings)

	bs := &BalanceSheet{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, name := range names {
		n := nets[name]
		amount := n.debits.Sub(n.credits).Abs()

		switch classify(name, n.category, resolver) {
		case account.TypeAsset:
			bs.Assets = append(bs.Assets, LineItem{Account: name, Amount: amount})
			bs.TotalAssets = bs.TotalAssets.Add(amount)
		case account.TypeLiability:
			bs.Liabilities = append(bs.Liabilities, LineItem{Account: name, Amount: amount})
			bs.TotalLiabilities = bs.TotalLiabilities.Add(amount)
		case account.TypeEquity:
			bs.Equity = append(bs.Equity, LineItem{Account: name, Amount: amount})
			bs.TotalEquity = bs.TotalEquity.Add(amount)
		}
	}

	is := ComputeIncomeStatement(logger, entries, resolver, filter)
	if !is.NetIncome.IsZero() || len(is.Revenues) > 0 || len(is.Expenses) > 0 {
		label := LabelAddNetIncome
		if is.NetIncome.IsNegative() {
			label = LabelLessNetLoss
		}
		bs.Equity = append(bs.Equity, LineItem{Account: label, Amount: is.NetIncome.Abs()})
		bs.TotalEquity = bs.TotalEquity.Add(is.NetIncome)
	}

	bs.Balanced = bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity)).Abs().LessThan(epsilon)
	return bs
}
