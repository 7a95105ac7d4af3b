package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] for config files. Durations are
// written as strings ("30s") or as integer nanoseconds.
type fileConfig struct {
	App struct {
		KeyHashKey        string   `json:"key_hash_key" toml:"key_hash_key" yaml:"key_hash_key"`
		TokenSignKey      string   `json:"token_sign_key" toml:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer       string   `json:"token_issuer" toml:"token_issuer" yaml:"token_issuer"`
		TokenDuration     Duration `json:"token_duration" toml:"token_duration" yaml:"token_duration"`
		MaxFailedAttempts int      `json:"max_failed_attempts" toml:"max_failed_attempts" yaml:"max_failed_attempts"`
		Version           string   `json:"version" toml:"version" yaml:"version"`
	} `json:"app" toml:"app" yaml:"app"`
	Storage struct {
		DatabaseDSN  string `json:"database_dsn" toml:"database_dsn" yaml:"database_dsn"`
		LiveDir      string `json:"live_dir" toml:"live_dir" yaml:"live_dir"`
		DestroyedDir string `json:"destroyed_dir" toml:"destroyed_dir" yaml:"destroyed_dir"`
		SessionDSN   string `json:"session_dsn" toml:"session_dsn" yaml:"session_dsn"`
	} `json:"storage" toml:"storage" yaml:"storage"`
	Server struct {
		Address        string   `json:"address" toml:"address" yaml:"address"`
		GRPCAddress    string   `json:"grpc_address" toml:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout" yaml:"request_timeout"`
		MaxUploadSize  int64    `json:"max_upload_size" toml:"max_upload_size" yaml:"max_upload_size"`
	} `json:"server" toml:"server" yaml:"server"`
	Adapter struct {
		ServerURL      string   `json:"server_url" toml:"server_url" yaml:"server_url"`
		RequestTimeout Duration `json:"request_timeout" toml:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" toml:"adapter" yaml:"adapter"`
	Backup struct {
		SMTP struct {
			Host     string `json:"host" toml:"host" yaml:"host"`
			Port     string `json:"port" toml:"port" yaml:"port"`
			Username string `json:"username" toml:"username" yaml:"username"`
			Password string `json:"password" toml:"password" yaml:"password"`
			From     string `json:"from" toml:"from" yaml:"from"`
		} `json:"smtp" toml:"smtp" yaml:"smtp"`
		Drive struct {
			ServiceAccountFile string `json:"service_account_file" toml:"service_account_file" yaml:"service_account_file"`
			ParentFolderID     string `json:"parent_folder_id" toml:"parent_folder_id" yaml:"parent_folder_id"`
		} `json:"drive" toml:"drive" yaml:"drive"`
	} `json:"backup" toml:"backup" yaml:"backup"`
	Workers struct {
		BackupQueueSize int `json:"backup_queue_size" toml:"backup_queue_size" yaml:"backup_queue_size"`
	} `json:"workers" toml:"workers" yaml:"workers"`
	Log struct {
		Level string `json:"level" toml:"level" yaml:"level"`
		File  string `json:"file" toml:"file" yaml:"file"`
	} `json:"log" toml:"log" yaml:"log"`
}

// Duration is a time.Duration readable from JSON, TOML and YAML either as a
// Go duration string or as integer nanoseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler (TOML, YAML strings).
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalJSON accepts "30s" and 30000000000.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*d = Duration(time.Duration(v))
		return nil
	case string:
		return d.UnmarshalText([]byte(v))
	case nil:
		return nil
	default:
		return fmt.Errorf("invalid duration %s", data)
	}
}

// UnmarshalYAML accepts the same forms as UnmarshalJSON.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var n int64
		if err := node.Decode(&n); err != nil {
			return err
		}
		*d = Duration(time.Duration(n))
		return nil
	}
	return d.UnmarshalText([]byte(node.Value))
}

// parseFile reads the config file at path. The format is chosen by the file
// extension.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &fc)
	case ".toml":
		err = toml.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			KeyHashKey:        fc.App.KeyHashKey,
			TokenSignKey:      fc.App.TokenSignKey,
			TokenIssuer:       fc.App.TokenIssuer,
			TokenDuration:     time.Duration(fc.App.TokenDuration),
			MaxFailedAttempts: fc.App.MaxFailedAttempts,
			Version:           fc.App.Version,
		},
		Storage: Storage{
			DB:      DB{DSN: fc.Storage.DatabaseDSN},
			Files:   Files{LiveDir: fc.Storage.LiveDir, DestroyedDir: fc.Storage.DestroyedDir},
			Session: Session{DSN: fc.Storage.SessionDSN},
		},
		Server: Server{
			HTTPAddress:    fc.Server.Address,
			GRPCAddress:    fc.Server.GRPCAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
			MaxUploadSize:  fc.Server.MaxUploadSize,
		},
		Adapter: Adapter{
			ServerURL:      fc.Adapter.ServerURL,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		Backup: Backup{
			SMTP: SMTP{
				Host:     fc.Backup.SMTP.Host,
				Port:     fc.Backup.SMTP.Port,
				Username: fc.Backup.SMTP.Username,
				Password: fc.Backup.SMTP.Password,
				From:     fc.Backup.SMTP.From,
			},
			Drive: Drive{
				ServiceAccountFile: fc.Backup.Drive.ServiceAccountFile,
				ParentFolderID:     fc.Backup.Drive.ParentFolderID,
			},
		},
		Workers: Workers{BackupQueueSize: fc.Workers.BackupQueueSize},
		Log:     Log{Level: fc.Log.Level, File: fc.Log.File},
	}
}
