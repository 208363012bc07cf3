package api_test

import (
	"context"
	"testing"

	"brandforge/internal/api"
	"brandforge/internal/config"
	"brandforge/internal/infrastructure"
	"brandforge/pkg/database"
	"brandforge/pkg/middleware"
	"brandforge/pkg/pagination"
	"brandforge/pkg/storage"
)

const azuriteConnString = "DefaultEndpointsProtocol=http;AccountName=brandforge;AccountKey=Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw==;BlobEndpoint=http://127.0.0.1:10000/brandforge;"

func validConfig() *config.Config {
	return &config.Config{
		Agent: config.AgentSettings{
			Name: "test-agent",
			Provider: config.ProviderSettings{
				Name:    "ollama",
				BaseURL: "http://localhost:11434",
				Options: make(map[string]any),
			},
			Model: config.ModelSettings{
				Name: "llama3.1:8b",
			},
		},
		Server: config.ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     "1m",
			WriteTimeout:    "15m",
			ShutdownTimeout: "30s",
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
		API: config.APIConfig{
			BasePath: "/api",
			CORS: middleware.CORSConfig{
				Enabled: false,
			},
			Pagination: pagination.Config{
				DefaultPageSize: 20,
				MaxPageSize:     100,
			},
		},
		Workflow: config.WorkflowConfig{
			StatusResetDelay: "3s",
			DocumentFormat:   "markdown",
		},
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
}

func setupInfra(t *testing.T) *infrastructure.Infrastructure {
	t.Helper()
	infra, err := infrastructure.New(validConfig())
	if err != nil {
		t.Fatalf("infrastructure.New() error = %v", err)
	}
	return infra
}

func TestNewModule(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	m, err := api.NewModule(context.Background(), cfg, infra)
	if err != nil {
		t.Fatalf("NewModule() error = %v", err)
	}

	if m.Prefix() != "/api" {
		t.Errorf("prefix: got %s, want /api", m.Prefix())
	}
}

func TestNewRuntime(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)

	runtime := api.NewRuntime(cfg, infra)

	if runtime.Pagination.DefaultPageSize != 20 {
		t.Errorf("pagination default page size: got %d, want 20", runtime.Pagination.DefaultPageSize)
	}
	if runtime.Pagination.MaxPageSize != 100 {
		t.Errorf("pagination max page size: got %d, want 100", runtime.Pagination.MaxPageSize)
	}

	wired := map[string]any{
		"logger":    runtime.Logger,
		"database":  runtime.Database,
		"storage":   runtime.Storage,
		"lifecycle": runtime.Lifecycle,
	}
	for name, v := range wired {
		if v == nil {
			t.Errorf("runtime %s is nil", name)
		}
	}
}

func TestNewDomain(t *testing.T) {
	cfg := validConfig()
	infra := setupInfra(t)
	runtime := api.NewRuntime(cfg, infra)

	domain := api.NewDomain(cfg, runtime)
	if domain == nil {
		t.Fatal("NewDomain() returned nil")
	}

	systems := map[string]any{
		"samples": domain.Samples,
		"prompts": domain.Prompts,
		"brands":  domain.Brands,
		"runs":    domain.Runs,
	}
	for name, v := range systems {
		if v == nil {
			t.Errorf("%s system is nil", name)
		}
	}
}
