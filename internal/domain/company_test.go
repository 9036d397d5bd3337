package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRegistryClientLookup(t *testing.T) {
	reg := Registry{
		Clients: map[string]ClientInfo{
			"acme":   {Key: "acme", Name: "ACME Corp", Prefix: "ACME"},
			"Globex": {Key: "Globex", Name: "Globex", Prefix: "GLX"},
		},
	}

	c, err := reg.Client("acme")
	if err != nil || c.Name != "ACME Corp" {
		t.Fatalf("expected exact match, got %+v %v", c, err)
	}

	c, err = reg.Client("GLOBEX")
	if err != nil || c.Prefix != "GLX" {
		t.Fatalf("expected case-folded match, got %+v %v", c, err)
	}

	_, err = reg.Client("initech")
	if !IsKind(err, KindConfig) || !errors.Is(err, ErrUnknownClient) {
		t.Fatalf("expected unknown client config error, got %v", err)
	}

	if keys := reg.ClientKeys(); len(keys) != 2 || keys[0] != "Globex" {
		t.Fatalf("expected sorted keys, got %v", keys)
	}
}

func TestActiveAccountsAndRate(t *testing.T) {
	co := CompanyInfo{BankAccounts: []BankAccount{
		{Name: "A", Active: true},
		{Name: "B"},
		{Name: "C", Active: true},
	}}
	active := co.ActiveAccounts()
	if len(active) != 2 || active[0].Name != "A" || active[1].Name != "C" {
		t.Fatalf("unexpected active accounts %+v", active)
	}

	def := decimal.NewFromInt(50)
	if got := (ClientInfo{}).RateOr(def); !got.Equal(def) {
		t.Fatalf("expected default rate, got %s", got)
	}
	r := decimal.NewFromInt(80)
	if got := (ClientInfo{Rate: &r}).RateOr(def); !got.Equal(r) {
		t.Fatalf("expected client rate, got %s", got)
	}
}

func TestRegistryClientAmbiguousFold(t *testing.T) {
	reg := Registry{
		Clients: map[string]ClientInfo{
			"Acme": {Key: "Acme", Prefix: "A1"},
			"ACME": {Key: "ACME", Prefix: "A2"},
		},
	}

	for i := 0; i < 50; i++ {
		_, err := reg.Client("acme")
		if !IsKind(err, KindConfig) || !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected ambiguous key config error, got %v", err)
		}
		if !strings.Contains(err.Error(), "ACME, Acme") {
			t.Fatalf("expected both keys named, got %v", err)
		}
	}

	c, err := reg.Client("ACME")
	if err != nil || c.Prefix != "A2" {
		t.Fatalf("expected exact key to win, got %+v %v", c, err)
	}
}
