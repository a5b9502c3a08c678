package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		expected Type
	}{
		{"Cash", TypeAsset},
		{"City Bank", TypeAsset},
		{"Accounts Receivable", TypeAsset},
		{"Inventory", TypeAsset},
		{"Fixed Assets", TypeAsset},
		{"Accounts Payable", TypeLiability},
		{"Bank Loan", TypeAsset}, // "bank" matches before "loan"
		{"Loan Payable", TypeLiability},
		{"Long-term Liability", TypeLiability},
		{"Owner's Capital", TypeEquity},
		{"Shareholder Equity", TypeEquity},
		{"Service Revenue", TypeRevenue},
		{"Interest Income", TypeRevenue},
		{"Sales", TypeRevenue},
		{"Rent Expense", TypeExpense},
		{"Salary", TypeExpense},
		{"Rent", TypeExpense},
		{"Miscellaneous Gadget", TypeUnknown},
		{"", TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.name))
		})
	}
}

func TestClassify_PriorityOrder(t *testing.T) {
	// Names matching keywords from several categories resolve to the
	// highest-priority category: asset before liability, liability
	// before equity, and so on down the chain.
	assert.Equal(t, TypeAsset, Classify("Loan Receivable"))
	assert.Equal(t, TypeLiability, Classify("Loan from Owner"))
	assert.Equal(t, TypeEquity, Classify("Owner Salary Account"))
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, TypeAsset, Classify("CASH ON HAND"))
	assert.Equal(t, TypeExpense, Classify("rent expense"))
	assert.Equal(t, TypeRevenue, Classify("SALES revenue"))
}

func TestHeuristicResolver(t *testing.T) {
	var resolver Resolver = HeuristicResolver{}
	assert.Equal(t, TypeAsset, resolver.ResolveType("Petty Cash"))
	assert.Equal(t, TypeUnknown, resolver.ResolveType("Widgets"))
}
