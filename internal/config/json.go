package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		Debug            bool     `json:"debug"`
		TokenSignKey     string   `json:"token_sign_key"`
		TokenAlgorithm   string   `json:"token_algorithm"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		MaxLoginAttempts int      `json:"max_login_attempts"`
		BcryptCost       int      `json:"bcrypt_cost"`
		ServerBaseURL    string   `json:"server_base_url"`
		Version          string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		Mail struct {
			Host      string   `json:"host"`
			Port      int      `json:"port"`
			Username  string   `json:"username"`
			Password  string   `json:"password"`
			From      string   `json:"from"`
			TLSPolicy string   `json:"tls_policy"`
			Timeout   Duration `json:"timeout"`
		} `json:"mail,omitempty"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Debug:            jsonCfg.App.Debug,
			TokenSignKey:     jsonCfg.App.TokenSignKey,
			TokenAlgorithm:   jsonCfg.App.TokenAlgorithm,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			TokenDuration:    time.Duration(jsonCfg.App.TokenDuration),
			MaxLoginAttempts: jsonCfg.App.MaxLoginAttempts,
			BcryptCost:       jsonCfg.App.BcryptCost,
			ServerBaseURL:    jsonCfg.App.ServerBaseURL,
			Version:          jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			Mail: Mail{
				Host:      jsonCfg.Adapter.Mail.Host,
				Port:      jsonCfg.Adapter.Mail.Port,
				Username:  jsonCfg.Adapter.Mail.Username,
				Password:  jsonCfg.Adapter.Mail.Password,
				From:      jsonCfg.Adapter.Mail.From,
				TLSPolicy: jsonCfg.Adapter.Mail.TLSPolicy,
				Timeout:   time.Duration(jsonCfg.Adapter.Mail.Timeout),
			},
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
