package quill

// Account is an account handle supplied by the host. The data buffer has a
// fixed capacity and is never resized by the program.
type Account struct {
	// The account identity.
	Key Identity

	// The program that owns the account.
	Owner Identity

	// Whether the data may be modified during this call.
	Writable bool

	// The account data.
	Data []byte
}

// Accounts is a cursor over the accounts supplied with an instruction.
type Accounts struct {
	list []*Account
	pos  int
}

// NewAccounts will create a cursor over the provided accounts.
func NewAccounts(list []*Account) *Accounts {
	return &Accounts{
		list: list,
	}
}

// Next will return the next account or ErrMissingAccount if the list has been
// exhausted.
func (a *Accounts) Next() (*Account, error) {
	// nil accounts count as missing
	if a.pos >= len(a.list) || a.list[a.pos] == nil {
		return nil, ErrMissingAccount
	}

	// get account
	account := a.list[a.pos]
	a.pos++

	return account, nil
}

// Remaining returns the number of unconsumed accounts.
func (a *Accounts) Remaining() int {
	return len(a.list) - a.pos
}
