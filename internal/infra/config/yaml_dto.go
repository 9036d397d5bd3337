package config

// The same DTOs decode config.yaml and config.json: JSON is valid YAML.

type YAMLRegistry struct {
	Clients   map[string]YAMLClient `yaml:"clients"`
	MyCompany YAMLCompany           `yaml:"myCompany"`
}

type YAMLClient struct {
	Name        string   `yaml:"name"`
	Address     string   `yaml:"address"`
	Email       string   `yaml:"email"`
	AttentionTo string   `yaml:"attentionTo"`
	Prefix      string   `yaml:"prefix"`
	Rate        *float64 `yaml:"rate"`
}

type YAMLCompany struct {
	Name         string            `yaml:"name"`
	Address      string            `yaml:"address"`
	NIF          string            `yaml:"nif"`
	STAT         string            `yaml:"stat"`
	Email        string            `yaml:"email"`
	BankAccounts []YAMLBankAccount `yaml:"bankAccounts"`
}

type YAMLBankAccount struct {
	Name          string `yaml:"name"`
	AccountName   string `yaml:"accountName"`
	AccountNumber string `yaml:"accountNumber"`
	IBAN          string `yaml:"iban"`
	SWIFT         string `yaml:"swift"`
	Active        bool   `yaml:"active"`
}
