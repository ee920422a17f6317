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
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageFirestore = "firestore"
	StorageInMemory  = "inmemory"
	StorageDisk      = "disk"

	DefaultTimezone = "Europe/Istanbul"
)

// Keys shared by the config file, CLI flag bindings and environment. The
// environment variable for a key is its upper-case form, e.g. gcp_project_id
// is read from GCP_PROJECT_ID.
const (
	KeyPort                     = "port"
	KeyStorageType              = "storage_type"
	KeyGCPProjectID             = "gcp_project_id"
	KeyFirestoreDatabaseID      = "firestore_database_id"
	KeyFirestoreCredentialsFile = "firestore_credentials_file"
	KeyDataDir                  = "data_dir"
	KeyTimezone                 = "timezone"
	KeyCORSAllowedOrigins       = "cors_allowed_origins"
	KeyAPIToken                 = "api_token"
	KeyOtelExporterEndpoint     = "otel_exporter_endpoint"
	KeyVersion                  = "version"
)

// Config holds the application configuration values.
type Config struct {
	Port                     string
	StorageType              string
	GCPProjectID             string
	FirestoreDatabaseID      string
	FirestoreCredentialsFile string
	DataDir                  string
	Timezone                 string
	Location                 *time.Location
	CORSAllowedOrigins       string
	APIToken                 string
	OtelExporterEndpoint     string
	Version                  string
}

// LoadConfig loads .env into the environment when present, then reads the
// global viper instance (flags, environment, lifeboard.yaml, defaults).
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()
	return Load(viper.GetViper())
}

// Load builds a Config from v. Flags bound to v take precedence over the
// environment, which takes precedence over the config file.
func Load(v *viper.Viper) (*Config, error) {
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyStorageType, StorageInMemory)
	v.SetDefault(KeyDataDir, "./data")
	v.SetDefault(KeyTimezone, DefaultTimezone)
	v.SetDefault(KeyVersion, "dev")
	for _, key := range []string{KeyGCPProjectID, KeyFirestoreDatabaseID, KeyFirestoreCredentialsFile,
		KeyCORSAllowedOrigins, KeyAPIToken, KeyOtelExporterEndpoint} {
		v.SetDefault(key, "")
	}
	v.AutomaticEnv()

	v.SetConfigName("lifeboard") // .yaml is implicit
	if override := os.Getenv("LIFEBOARD_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:                     v.GetString(KeyPort),
		StorageType:              v.GetString(KeyStorageType),
		GCPProjectID:             v.GetString(KeyGCPProjectID),
		FirestoreDatabaseID:      v.GetString(KeyFirestoreDatabaseID),
		FirestoreCredentialsFile: v.GetString(KeyFirestoreCredentialsFile),
		DataDir:                  v.GetString(KeyDataDir),
		Timezone:                 v.GetString(KeyTimezone),
		CORSAllowedOrigins:       v.GetString(KeyCORSAllowedOrigins),
		APIToken:                 v.GetString(KeyAPIToken),
		OtelExporterEndpoint:     v.GetString(KeyOtelExporterEndpoint),
		Version:                  v.GetString(KeyVersion),
	}

	switch cfg.StorageType {
	case StorageFirestore:
		if cfg.GCPProjectID == "" {
			return nil, fmt.Errorf("STORAGE_TYPE is 'firestore' but GCP_PROJECT_ID is not set")
		}
	case StorageDisk:
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("STORAGE_TYPE is 'disk' but DATA_DIR is empty")
		}
	case StorageInMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE_TYPE %q", cfg.StorageType)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg, nil
}
