package internal

import (
	"encoding/json"
	"fmt"
	"os"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

type Secrets struct {
	Db                  DbSecrets          `json:"db"`
	FundamentalsBaseUrl string             `json:"fundamentalsBaseUrl"`
	CurrencyConversion  map[string]float64 `json:"currencyConversion"`
}

type DbSecrets struct {
	Host      string `json:"host"`
	User      string `json:"user"`
	Port      string `json:"port"`
	Password  string `json:"password"`
	Database  string `json:"database"`
	EnableSsl bool   `json:"enableSsl"`
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

// LoadSecrets reads the environment-specific secrets file. A missing file
// is not fatal - the service runs with defaults (no request-log db, public
// data provider, unity currency conversion).
func LoadSecrets() (*Secrets, error) {
	secretsFile := "secrets.json"
	if os.Getenv("FAIRVAL_ENV") == "dev" {
		secretsFile = "secrets-dev.json"
	} else if os.Getenv("FAIRVAL_ENV") == "test" {
		secretsFile = "secrets-test.json"
	}

	secrets := Secrets{}
	f, err := os.ReadFile(secretsFile)
	if os.IsNotExist(err) {
		return &secrets, nil
	} else if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", secretsFile, err)
	}

	err = json.Unmarshal(f, &secrets)
	if err != nil {
		return nil, err
	}

	return &secrets, nil
}
