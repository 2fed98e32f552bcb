package services

import "strings"

// DefaultDenylist is always part of the policy regardless of configuration.
var DefaultDenylist = []string{
	"DpMcHVRUveeUS3xYh8APDPVySVxZXa79pfzjswGjDR6S",
}

// Denylist is an immutable set of account identifiers that may neither send nor receive.
// Matching is exact; no normalization beyond trimming is applied when the set is built.
type Denylist struct {
	accounts map[string]struct{}
}

func NewDenylist(accounts ...string) *Denylist {
	set := make(map[string]struct{}, len(accounts))
	for _, account := range accounts {
		account = strings.TrimSpace(account)
		if account == "" {
			continue
		}
		set[account] = struct{}{}
	}

	return &Denylist{accounts: set}
}

func (d *Denylist) IsDenied(account string) bool {
	if d == nil {
		return false
	}
	_, denied := d.accounts[account]
	return denied
}

// Size returns the number of distinct denied accounts
func (d *Denylist) Size() int {
	if d == nil {
		return 0
	}
	return len(d.accounts)
}
