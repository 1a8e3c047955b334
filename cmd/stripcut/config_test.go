package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFromFile_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}
	def := NewDefaultConfig()
	if *cfg != *def {
		t.Errorf("expected defaults %+v, got %+v", def, cfg)
	}
}

func TestLoadConfigFromFile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[scan]
sensitivity = 0.25
step = 4

[pages]
max_height = 1600

[output]
format = "jpg"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}
	if cfg.Scan.Sensitivity != 0.25 {
		t.Errorf("expected sensitivity 0.25, got %g", cfg.Scan.Sensitivity)
	}
	if cfg.Scan.Step != 4 {
		t.Errorf("expected step 4, got %d", cfg.Scan.Step)
	}
	if cfg.Scan.MultilineWindow != 3 {
		t.Errorf("unset values keep defaults, got window %d", cfg.Scan.MultilineWindow)
	}
	if cfg.Pages.MaxHeight != 1600 {
		t.Errorf("expected max height 1600, got %d", cfg.Pages.MaxHeight)
	}
	if cfg.Pages.MinHeight != 1000 {
		t.Errorf("unset values keep defaults, got min height %d", cfg.Pages.MinHeight)
	}
	if cfg.Output.Format != "jpg" {
		t.Errorf("expected format jpg, got %s", cfg.Output.Format)
	}
}

func TestExportOptions(t *testing.T) {
	if _, err := exportOptions(&appFlags{format: "gif"}); err == nil {
		t.Error("expected error for unsupported format")
	}
	opts, err := exportOptions(&appFlags{format: "JPEG", jpegQuality: 85})
	if err != nil {
		t.Fatalf("exportOptions failed: %v", err)
	}
	if opts.JPEGQuality != 85 {
		t.Errorf("expected quality 85, got %d", opts.JPEGQuality)
	}
}
