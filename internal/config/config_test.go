package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port=%q", cfg.Port)
	}
	if cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("mode=%q level=%q", cfg.GinMode, cfg.LogLevel)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("base path=%q", cfg.APIBasePath)
	}
	if cfg.DecisiveThreshold != 0.80 {
		t.Fatalf("threshold=%v", cfg.DecisiveThreshold)
	}
	if cfg.Cache.Backend != CacheBackendMemory || cfg.Cache.TTL != time.Hour {
		t.Fatalf("cache=%+v", cfg.Cache)
	}
	if cfg.AI.Enabled {
		t.Fatal("AI must default off")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "WARNING") // normalized to warn
	t.Setenv("GIN_MODE", "weird")    // normalized to release
	t.Setenv("API_BASE_PATH", "api/v2/")
	t.Setenv("DECISIVE_THRESHOLD", "0.7")
	t.Setenv("CACHE_TTL", "30m")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("Port=%q", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("LogLevel=%q", cfg.LogLevel)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode=%q", cfg.GinMode)
	}
	if cfg.APIBasePath != "/api/v2" {
		t.Fatalf("APIBasePath=%q", cfg.APIBasePath)
	}
	if cfg.DecisiveThreshold != 0.7 {
		t.Fatalf("threshold=%v", cfg.DecisiveThreshold)
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Fatalf("TTL=%v", cfg.Cache.TTL)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != "https://a.example" {
		t.Fatalf("origins=%v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name   string
		key    string
		value  string
		substr string
	}{
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"threshold too high", "DECISIVE_THRESHOLD", "1.5", "DECISIVE_THRESHOLD"},
		{"negative runes", "MAX_DESCRIPTION_RUNES", "-1", "MAX_DESCRIPTION_RUNES"},
		{"unknown cache backend", "CACHE_BACKEND", "memcached", "CACHE_BACKEND"},
		{"negative rps", "RATE_RPS", "-2", "RATE_RPS"},
		{"zero burst", "RATE_BURST", "0", "RATE_BURST"},
		{"sample ratio", "OTEL_TRACES_SAMPLER_ARG", "3", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.substr) {
				t.Fatalf("error %q missing %q", err, tc.substr)
			}
		})
	}
}

func TestLoad_RedisBackendRequiresURL(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "redis")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "REDIS_URL") {
		t.Fatalf("err=%v", err)
	}

	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Fatalf("backend=%q", cfg.Cache.Backend)
	}
}

func TestLoad_AIEnabledRequiresKey(t *testing.T) {
	t.Setenv("AI_ENABLED", "true")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Fatalf("err=%v", err)
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.AI.Enabled || cfg.AI.Model != "gpt-4o-mini" {
		t.Fatalf("ai=%+v", cfg.AI)
	}
}

func TestMustLoad_PanicsOnInvalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "nope")
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustLoad()
}

func TestNormalizeBasePath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "/"},
		{"/", "/"},
		{"api", "/api"},
		{"/api/v1/", "/api/v1"},
		{"  /x ", "/x"},
	}
	for _, tc := range cases {
		if got := normalizeBasePath(tc.in); got != tc.want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
