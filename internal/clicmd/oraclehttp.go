package clicmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/caarlos0/env/v6"

	"github.com/mna/jsrename/oracle"
)

// OracleConfig configures the CLI's demo HTTP-backed oracle, read from the
// environment (§1: the naming oracle is an external collaborator, not part
// of the core; only the CLI needs to know how to reach one).
type OracleConfig struct {
	Endpoint string        `env:"JSRENAME_ORACLE_ENDPOINT,required"`
	APIKey   string        `env:"JSRENAME_ORACLE_API_KEY"`
	Timeout  time.Duration `env:"JSRENAME_ORACLE_TIMEOUT" envDefault:"30s"`
}

// OracleConfigFromEnv parses OracleConfig from the process environment.
func OracleConfigFromEnv() (OracleConfig, error) {
	var cfg OracleConfig
	if err := env.Parse(&cfg); err != nil {
		return OracleConfig{}, fmt.Errorf("clicmd: reading oracle config: %w", err)
	}
	return cfg, nil
}

// HTTPOracle implements oracle.Oracle by POSTing the request as JSON to a
// configured endpoint and decoding an equally-shaped JSON response. It is a
// demonstration client, not a production integration: real deployments are
// expected to supply their own oracle.Oracle.
type HTTPOracle struct {
	cfg    OracleConfig
	client *http.Client
}

// NewHTTPOracle builds an HTTPOracle from cfg, defaulting the HTTP client's
// timeout to cfg.Timeout.
func NewHTTPOracle(cfg OracleConfig) *HTTPOracle {
	return &HTTPOracle{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (h *HTTPOracle) SuggestNames(ctx context.Context, req oracle.Request) (oracle.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("clicmd: encoding oracle request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("clicmd: building oracle request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if h.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+h.cfg.APIKey)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("clicmd: oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("clicmd: oracle returned %s: %s", resp.Status, b)
	}

	var out oracle.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("clicmd: decoding oracle response: %w", err)
	}
	return out, nil
}
