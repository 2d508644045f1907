package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "num_devices: 25\nhello_timeout: 0.5\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.NumDevices != 25 {
		t.Errorf("NumDevices = %d, want 25", cfg.NumDevices)
	}
	if cfg.HelloTimeout != 0.5 {
		t.Errorf("HelloTimeout = %v, want 0.5", cfg.HelloTimeout)
	}

	def := Default()
	if cfg.TxRange != def.TxRange {
		t.Errorf("TxRange = %v, want default %v", cfg.TxRange, def.TxRange)
	}
	if cfg.SlotDuration != def.SlotDuration {
		t.Errorf("SlotDuration = %v, want default %v", cfg.SlotDuration, def.SlotDuration)
	}
	if cfg.SimDuration != def.SimDuration {
		t.Errorf("SimDuration = %v, want default %v", cfg.SimDuration, def.SimDuration)
	}
}

func TestLoadRejectsNegativeDurations(t *testing.T) {
	path := writeConfig(t, "slot_duration: -0.1\n")

	if _, err := Load(path); err == nil {
		t.Error("negative slot_duration accepted")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "slot_duration: [not a number\n")

	if _, err := Load(path); err == nil {
		t.Error("malformed YAML accepted")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}
