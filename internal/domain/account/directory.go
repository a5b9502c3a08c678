package account

import "sort"

// Directory is an in-memory chart of accounts. It resolves account names
// to types for the report engine, falling back to the name heuristic for
// accounts that were never registered (postings discover accounts
// dynamically, so an unregistered name is not an error).
type Directory struct {
	byName map[string]*Account
	byCode map[string]*Account
}

// NewDirectory builds a directory from a seed list. Accounts that fail
// to register (duplicate code under a different name) are skipped; the
// caller is expected to have persisted a consistent set.
func NewDirectory(accounts []*Account) *Directory {
	d := &Directory{
		byName: make(map[string]*Account, len(accounts)),
		byCode: make(map[string]*Account, len(accounts)),
	}
	for _, acc := range accounts {
		_ = d.Register(acc)
	}
	return d
}

// Register adds an account to the directory. Registering the same name
// again is a no-op. Returns ErrDuplicateCode if the code is already
// taken by a different account.
func (d *Directory) Register(acc *Account) error {
	if acc.Name == "" {
		return ErrEmptyName
	}

	if existing, ok := d.byName[acc.Name]; ok && existing != nil {
		return nil // idempotent
	}

	if acc.Code != "" {
		if other, ok := d.byCode[acc.Code]; ok && other.Name != acc.Name {
			return ErrDuplicateCode{Code: acc.Code}
		}
		d.byCode[acc.Code] = acc
	}

	d.byName[acc.Name] = acc
	return nil
}

// Lookup returns the registered account for a name, or nil.
func (d *Directory) Lookup(name string) *Account {
	return d.byName[name]
}

// ResolveType resolves an account name to its type: the registered type
// when the account is known, otherwise the name heuristic.
func (d *Directory) ResolveType(name string) Type {
	if acc, ok := d.byName[name]; ok && acc.Type.Known() {
		return acc.Type
	}
	return Classify(name)
}

// Accounts returns all registered accounts sorted by name.
func (d *Directory) Accounts() []*Account {
	accounts := make([]*Account, 0, len(d.byName))
	for _, acc := range d.byName {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return accounts
}

var _ Resolver = (*Directory)(nil)
