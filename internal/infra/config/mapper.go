package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aalvaropc/invoicer/internal/domain"
)

func MapRegistry(path string, yr YAMLRegistry) (domain.Registry, error) {
	company, err := MapCompany(path, yr.MyCompany)
	if err != nil {
		return domain.Registry{}, err
	}

	if len(yr.Clients) == 0 {
		return domain.Registry{}, invalidField(path, "clients", "at least one client is required")
	}

	keys := make([]string, 0, len(yr.Clients))
	for k := range yr.Clients {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	reg := domain.Registry{
		Company: company,
		Clients: make(map[string]domain.ClientInfo, len(yr.Clients)),
	}
	for _, k := range keys {
		c, err := MapClient(path, k, yr.Clients[k])
		if err != nil {
			return domain.Registry{}, err
		}
		reg.Clients[k] = c
	}

	return reg, nil
}

func MapCompany(path string, yc YAMLCompany) (domain.CompanyInfo, error) {
	if strings.TrimSpace(yc.Name) == "" {
		return domain.CompanyInfo{}, invalidField(path, "myCompany.name", "company name is required")
	}

	co := domain.CompanyInfo{
		Name:         yc.Name,
		Address:      yc.Address,
		NIF:          yc.NIF,
		STAT:         yc.STAT,
		Email:        yc.Email,
		BankAccounts: make([]domain.BankAccount, 0, len(yc.BankAccounts)),
	}

	for i, a := range yc.BankAccounts {
		if a.Active && strings.TrimSpace(a.IBAN) == "" && strings.TrimSpace(a.AccountNumber) == "" {
			return domain.CompanyInfo{}, invalidField(path, fmt.Sprintf("myCompany.bankAccounts[%d]", i), "active account needs an iban or accountNumber")
		}
		co.BankAccounts = append(co.BankAccounts, domain.BankAccount{
			Name:          a.Name,
			AccountName:   a.AccountName,
			AccountNumber: a.AccountNumber,
			IBAN:          a.IBAN,
			SWIFT:         a.SWIFT,
			Active:        a.Active,
		})
	}

	return co, nil
}

func MapClient(path, key string, yc YAMLClient) (domain.ClientInfo, error) {
	fieldPrefix := "clients." + key
	if strings.TrimSpace(yc.Name) == "" {
		return domain.ClientInfo{}, invalidField(path, fieldPrefix+".name", "client name is required")
	}
	if strings.TrimSpace(yc.Prefix) == "" {
		return domain.ClientInfo{}, invalidField(path, fieldPrefix+".prefix", "prefix is required")
	}

	c := domain.ClientInfo{
		Key:         key,
		Name:        yc.Name,
		Address:     yc.Address,
		Email:       yc.Email,
		AttentionTo: strings.TrimSpace(yc.AttentionTo),
		Prefix:      strings.TrimSpace(yc.Prefix),
	}

	// rate: 0 means "not set" and falls back to the default rate.
	if yc.Rate != nil && *yc.Rate != 0 {
		if *yc.Rate < 0 {
			return domain.ClientInfo{}, invalidField(path, fieldPrefix+".rate", "rate must not be negative")
		}
		r := decimal.NewFromFloat(*yc.Rate)
		c.Rate = &r
	}

	return c, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
