package config

import "testing"

func TestLoadFromEnv_UsesDefaults(t *testing.T) {
	t.Setenv("MEALBRIDGE_SESSION", "opaque-cookie-value")
	t.Setenv("MEALBRIDGE_API_BASE_URL", "")
	t.Setenv("MEALBRIDGE_DB_PATH", "")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Fatalf("unexpected API base URL: %s", cfg.APIBaseURL)
	}
	if cfg.DBPath != "mealbridge.db" {
		t.Fatalf("unexpected DB path: %s", cfg.DBPath)
	}
}

func TestLoadFromEnv_MissingSession(t *testing.T) {
	t.Setenv("MEALBRIDGE_SESSION", "")

	_, err := LoadFromEnv()
	if err == nil {
		t.Fatal("expected error for missing session")
	}
}

func TestValidate_APIBaseURLTrailingSlash(t *testing.T) {
	cfg := Config{
		APIBaseURL: "https://mealbridge.example.com/",
		Session:    "s",
		DBPath:     "mealbridge.db",
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}
