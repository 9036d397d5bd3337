package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// BankAccount is one payment destination of the issuing company.
type BankAccount struct {
	Name          string
	AccountName   string
	AccountNumber string
	IBAN          string
	SWIFT         string
	Active        bool
}

// CompanyInfo describes the issuer printed on every invoice.
type CompanyInfo struct {
	Name         string
	Address      string
	NIF          string
	STAT         string
	Email        string
	BankAccounts []BankAccount
}

// ActiveAccounts returns the accounts flagged active, in config order.
func (c CompanyInfo) ActiveAccounts() []BankAccount {
	out := make([]BankAccount, 0, len(c.BankAccounts))
	for _, a := range c.BankAccounts {
		if a.Active {
			out = append(out, a)
		}
	}
	return out
}

// ClientInfo is a billable customer. Rate is nil when the config omits it.
type ClientInfo struct {
	Key         string
	Name        string
	Address     string
	Email       string
	AttentionTo string
	Prefix      string
	Rate        *decimal.Decimal
}

// RateOr returns the client's hourly rate or fallback when unset.
func (c ClientInfo) RateOr(fallback decimal.Decimal) decimal.Decimal {
	if c.Rate == nil {
		return fallback
	}
	return *c.Rate
}

// Registry is the loaded data config: the issuing company and its clients.
type Registry struct {
	Company CompanyInfo
	Clients map[string]ClientInfo
}

// Client looks up a client by exact key first, then by case-folded key.
// A folded key matching several clients is a config error rather than a guess.
func (r Registry) Client(key string) (ClientInfo, error) {
	if c, ok := r.Clients[key]; ok {
		return c, nil
	}

	fold := cases.Fold()
	want := fold.String(key)
	var matches []string
	for k := range r.Clients {
		if fold.String(k) == want {
			matches = append(matches, k)
		}
	}

	switch len(matches) {
	case 1:
		return r.Clients[matches[0]], nil
	case 0:
		return ClientInfo{}, &OpError{
			Op:   "registry.client",
			Kind: KindConfig,
			Err:  fmt.Errorf("client with key %q not found in config: %w", key, ErrUnknownClient),
		}
	default:
		sort.Strings(matches)
		return ClientInfo{}, &OpError{
			Op:   "registry.client",
			Kind: KindConfig,
			Err: fmt.Errorf("client key %q is ambiguous, it matches %s; use the exact key: %w",
				key, strings.Join(matches, ", "), ErrInvalidConfig),
		}
	}
}

// ClientKeys returns the configured keys in sorted order.
func (r Registry) ClientKeys() []string {
	keys := make([]string, 0, len(r.Clients))
	for k := range r.Clients {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
