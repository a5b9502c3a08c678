package handler

// EntryLineRequest is one debit or credit line in a journal entry
// submission. Amounts are decimal strings so they survive the wire
// without float drift.
type EntryLineRequest struct {
	Account  string `json:"account" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=Debit Credit"`
	Amount   string `json:"amount" binding:"required"`
	Category string `json:"category,omitempty" binding:"omitempty,oneof=asset liability equity revenue expense"`
}

// CreateEntryRequest represents a journal entry submission
type CreateEntryRequest struct {
	Date        string             `json:"date" binding:"required"`
	Description string             `json:"description,omitempty"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// EntryLineResponse represents one line of an entry in API responses
type EntryLineResponse struct {
	Account  string `json:"account"`
	Type     string `json:"type"`
	Amount   string `json:"amount"`
	Category string `json:"category,omitempty"`
}

// EntryResponse represents a committed journal entry in API responses
type EntryResponse struct {
	EntryID     string              `json:"entry_id"`
	Date        string              `json:"date"`
	Description string              `json:"description,omitempty"`
	Lines       []EntryLineResponse `json:"lines"`
	CreatedAt   string              `json:"created_at"`
}

// EntryListResponse represents a list of journal entries
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Count   int             `json:"count"`
}

// CreateAccountRequest represents a request to register a directory account
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code,omitempty"`
	Type string `json:"type,omitempty" binding:"omitempty,oneof=asset liability equity revenue expense"`
}

// AccountResponse represents a directory account in API responses
type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AccountListResponse represents the account directory listing
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Count    int               `json:"count"`
}

// RangeParams are the optional inclusive date bounds accepted by every
// report endpoint, in 2006-01-02 form.
type RangeParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// LedgerParams narrow the ledger report to a single account when set
type LedgerParams struct {
	RangeParams
	Account string `form:"account"`
}

// TrialBalanceParams add the as-of cutoff to the range bounds
type TrialBalanceParams struct {
	RangeParams
	AsOf string `form:"as_of"`
}
