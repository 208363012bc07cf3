package infrastructure_test

import (
	"testing"

	"brandforge/internal/config"
	"brandforge/internal/infrastructure"
	"brandforge/pkg/database"
	"brandforge/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=brandforge;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/brandforge;"

func validConfig() *config.Config {
	return &config.Config{
		Agent: config.AgentSettings{
			Name:     "brandsmith",
			Provider: config.ProviderSettings{Name: "ollama", BaseURL: "http://localhost:11434"},
			Model:    config.ModelSettings{Name: "llama3.1:8b"},
		},
		Database: database.Config{
			Host:            "localhost",
			Port:            5432,
			Name:            "brandforge",
			User:            "brandforge",
			Password:        "brandforge",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: "15m",
			ConnTimeout:     "5s",
		},
		Storage: storage.Config{
			ContainerName:    "brandkits",
			ConnectionString: azuriteConnString,
			MaxListSize:      50,
		},
		Version: "0.1.0",
	}
}

func TestNew(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	systems := map[string]any{
		"lifecycle": infra.Lifecycle,
		"logger":    infra.Logger,
		"database":  infra.Database,
		"storage":   infra.Storage,
	}
	for name, v := range systems {
		if v == nil {
			t.Errorf("%s is nil", name)
		}
	}

	if infra.Agent.Name != "brandsmith" {
		t.Errorf("agent name = %q, want brandsmith", infra.Agent.Name)
	}
}

func TestNewDatabaseConnection(t *testing.T) {
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := infra.Database.Connection()
	if conn == nil {
		t.Fatal("Database.Connection() returned nil")
	}
	conn.Close()
}

func TestNewInvalidStorageConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.ConnectionString = "not-a-connection-string"

	if _, err := infrastructure.New(cfg); err == nil {
		t.Fatal("expected error for invalid storage connection string")
	}
}
