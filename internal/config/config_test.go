package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.HTTP.Port != 3000 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.MaxBodyBytes != 2<<20 {
		t.Errorf("max_body_bytes = %d", cfg.HTTP.MaxBodyBytes)
	}
	if !reflect.DeepEqual(cfg.HTTP.CORSOrigins, []string{"*"}) {
		t.Errorf("cors_origins = %v", cfg.HTTP.CORSOrigins)
	}
	if cfg.Storage.Driver != DriverFile || cfg.Storage.Key != "funds_data.json" || cfg.Storage.DataDir != "data" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.RateLimit.Enabled() {
		t.Error("rate limiting should be disabled by default")
	}
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("FUNDEX_PORT", "8081")
	t.Setenv("FUNDEX_REDIS", "")

	cfg, err := Parse([]byte(`
http:
  port: ${FUNDEX_PORT}
storage:
  driver: redis
  addrs: ["${FUNDEX_REDIS:-localhost:6379}"]
rate_limit:
  requests_per_second: 20
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 8081 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if !reflect.DeepEqual(cfg.Storage.Addrs, []string{"localhost:6379"}) {
		t.Errorf("addrs = %v", cfg.Storage.Addrs)
	}
	if cfg.RateLimit.Burst != 20 {
		t.Errorf("burst = %d, want default equal to rate", cfg.RateLimit.Burst)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		c := Config{}
		c.ApplyDefaults()
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.HTTP.Port = 70000 }, "http.port"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "sqlite" }, "storage.driver"},
		{"redis without addrs", func(c *Config) { c.Storage.Driver = DriverRedis }, "storage.addrs"},
		{"key with separator", func(c *Config) { c.Storage.Key = "../x.json" }, "storage.key"},
		{"negative rate", func(c *Config) { c.RateLimit.RequestsPerSecond = -1 }, "rate_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.Storage.Driver != DriverFile {
		t.Errorf("driver = %q", cfg.Storage.Driver)
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv = %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv = %q", got)
	}
}
