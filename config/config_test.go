package config

import (
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Config{
		Secrets:    SecretsConfig{Source: SecretSourceStatic},
		RouteStore: RouteStoreConfig{Driver: RouteDriverSQLite, SQLitePath: "routes.db"},
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Static sqlite", mutate: func(c *Config) {}},
		{name: "GCP without project", mutate: func(c *Config) { c.Secrets.Source = SecretSourceGCP }, wantErr: true},
		{name: "GCP", mutate: func(c *Config) {
			c.Secrets = SecretsConfig{Source: SecretSourceGCP, GCPProject: "p", GCPSecretID: "s"}
		}},
		{name: "Unknown source", mutate: func(c *Config) { c.Secrets.Source = "vault" }, wantErr: true},
		{name: "Redis without addr", mutate: func(c *Config) { c.RouteStore.Driver = RouteDriverRedis }, wantErr: true},
		{name: "Redis", mutate: func(c *Config) {
			c.RouteStore.Driver = RouteDriverRedis
			c.RouteStore.RedisAddr = "localhost:6379"
		}},
		{name: "Unknown driver", mutate: func(c *Config) { c.RouteStore.Driver = "dynamo" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" 10.0.0.0/8, ,192.168.1.1,")
	want := []string{"10.0.0.0/8", "192.168.1.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if splitList("") != nil {
		t.Error("expected nil for empty input")
	}
}
