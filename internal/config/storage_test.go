package config

import "testing"

func TestLoadStorageDefaults(t *testing.T) {
	t.Setenv("STORAGE_MODE", "")
	t.Setenv("SQLITE_PATH", "")

	cfg, err := LoadStorage()
	if err != nil {
		t.Fatalf("LoadStorage() error = %v", err)
	}
	if cfg.Mode != StorageSQLite || cfg.SQLitePath != "blackjack.db" || cfg.PostgresMaxConns != 8 {
		t.Fatalf("unexpected storage defaults: %+v", cfg)
	}
}

func TestStorageValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StorageConfig
		wantErr bool
	}{
		{name: "sqlite", cfg: StorageConfig{Mode: StorageSQLite, SQLitePath: "x.db"}},
		{name: "memory", cfg: StorageConfig{Mode: StorageMemory}},
		{name: "postgres", cfg: StorageConfig{Mode: StoragePostgres, PostgresDSN: "postgres://localhost/x"}},
		{name: "postgres without dsn", cfg: StorageConfig{Mode: StoragePostgres}, wantErr: true},
		{name: "unknown mode", cfg: StorageConfig{Mode: "redis"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadStorageRequiresPostgresDSN(t *testing.T) {
	t.Setenv("STORAGE_MODE", "postgres")
	t.Setenv("POSTGRES_DSN", "")

	if _, err := LoadStorage(); err == nil {
		t.Fatal("LoadStorage() expected error, got nil")
	}
}
