/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LIFEBOARD_CONFIG_PATH", t.TempDir())
	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.StorageType != StorageInMemory || cfg.Timezone != DefaultTimezone {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Location == nil || cfg.Location.String() != DefaultTimezone {
		t.Fatalf("expected location %s, got %v", DefaultTimezone, cfg.Location)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_TYPE", "disk")
	t.Setenv("DATA_DIR", "/var/lib/lifeboard")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("API_TOKEN", "secret")

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.StorageType != StorageDisk || cfg.DataDir != "/var/lib/lifeboard" || cfg.APIToken != "secret" {
		t.Fatalf("environment not applied: %+v", cfg)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC, got %v", cfg.Location)
	}
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lifeboard.yaml"), []byte("port: \"7070\"\ntimezone: Europe/Berlin\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("LIFEBOARD_CONFIG_PATH", dir)

	cfg, err := Load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7070" || cfg.Location.String() != "Europe/Berlin" {
		t.Fatalf("config file not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"firestore without project": {"STORAGE_TYPE": "firestore"},
		"unknown storage":           {"STORAGE_TYPE": "postgres"},
		"bad timezone":              {"TIMEZONE": "Mars/Olympus"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(viper.New()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
