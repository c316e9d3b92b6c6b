package app

import (
	"testing"

	"github.com/lvcoi/ytdl-catalog/internal/downloader"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"single", ModeSingle, false},
		{"SPLIT", ModeSplit, false},
		{"", ModeSplit, false},
		{"both", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultCatalogConfigIsValid(t *testing.T) {
	cfg := DefaultCatalogConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Mode != ModeSplit || cfg.Container != "mp4" || !cfg.Reveal {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestCatalogConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CatalogConfig)
	}{
		{"empty input", func(c *CatalogConfig) { c.InputPath = "" }},
		{"empty output", func(c *CatalogConfig) { c.OutputDir = " " }},
		{"bad mode", func(c *CatalogConfig) { c.Mode = "stream" }},
		{"relative base", func(c *CatalogConfig) { c.BaseURL = "youtube.com" }},
		{"negative timeout", func(c *CatalogConfig) { c.Options.Timeout = -1 }},
		{"bad log level", func(c *CatalogConfig) { c.Options.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultCatalogConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if downloader.CategoryOf(err) != downloader.CategoryParse {
				t.Fatalf("expected parse category, got %q", downloader.CategoryOf(err))
			}
		})
	}
}
