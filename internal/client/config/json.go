package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fitmint/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current value alone.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	AccessToken        *string         `json:"access_token"`
	SecretKey          *string         `json:"secret_key"`
	TokenTTL           *timex.Duration `json:"token_ttl"`
	Timeout            *timex.Duration `json:"timeout"`
}

func parseJson(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.AccessToken != nil {
		cfg.AccessToken = *jc.AccessToken
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.TokenTTL != nil {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	return nil
}
