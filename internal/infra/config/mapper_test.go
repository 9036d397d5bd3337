package config

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMapRegistryRequiresClientsAndCompany(t *testing.T) {
	_, err := MapRegistry("config.yaml", YAMLRegistry{})
	if err == nil || !strings.Contains(err.Error(), "myCompany.name") {
		t.Fatalf("expected company name error, got %v", err)
	}

	_, err = MapRegistry("config.yaml", YAMLRegistry{MyCompany: YAMLCompany{Name: "Me"}})
	if err == nil || !strings.Contains(err.Error(), "clients") {
		t.Fatalf("expected clients error, got %v", err)
	}
}

func TestMapClientValidation(t *testing.T) {
	_, err := MapClient("config.yaml", "acme", YAMLClient{Prefix: "ACME"})
	if err == nil || !strings.Contains(err.Error(), "clients.acme.name") {
		t.Fatalf("expected name error, got %v", err)
	}

	neg := -5.0
	_, err = MapClient("config.yaml", "acme", YAMLClient{Name: "ACME", Prefix: "ACME", Rate: &neg})
	if err == nil || !strings.Contains(err.Error(), "clients.acme.rate") {
		t.Fatalf("expected rate error, got %v", err)
	}

	rate := 80.0
	c, err := MapClient("config.yaml", "acme", YAMLClient{Name: "ACME", Prefix: " ACME ", AttentionTo: "  ", Rate: &rate})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Prefix != "ACME" || c.AttentionTo != "" || c.Rate.String() != "80" {
		t.Fatalf("unexpected mapped client %+v", c)
	}
}

func TestMapCompanyActiveAccountNeedsNumber(t *testing.T) {
	_, err := MapCompany("config.yaml", YAMLCompany{
		Name:         "Me",
		BankAccounts: []YAMLBankAccount{{Name: "Empty", Active: true}},
	})
	if err == nil || !strings.Contains(err.Error(), "myCompany.bankAccounts[0]") {
		t.Fatalf("expected bank account error, got %v", err)
	}
}

func TestMapClientZeroRateUsesDefault(t *testing.T) {
	zero := 0.0
	c, err := MapClient("config.yaml", "k", YAMLClient{Name: "K", Prefix: "K", Rate: &zero})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Rate != nil {
		t.Fatalf("expected zero rate to be treated as unset, got %s", c.Rate)
	}
	if got := c.RateOr(decimal.NewFromInt(50)); got.String() != "50" {
		t.Fatalf("expected default rate 50, got %s", got)
	}
}
