package config

import (
	_ "embed"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
	PrivateKeyName    = "private_key"
	ScriptDirName     = "scripts"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	Prompt       string `json:"prompt" validate:"required"`
	Color        string `json:"color" validate:"oneof=always auto never"`
	HistoryFile  string `json:"history_file"`
	MaxCallDepth int    `json:"max_call_depth" validate:"gte=0"`

	Server Server `json:"server"`
}

type Server struct {
	SSHPort             int    `json:"ssh_port" validate:"gte=0,lte=65535"`
	Password            string `json:"password"`
	HostKey             string `json:"host_key" validate:"required"`
	ScriptDir           string `json:"script_dir" validate:"required"`
	Motd                string `json:"motd"`
	InputBytesPerSecond int64  `json:"input_bytes_per_second" validate:"gte=0"`
	RecordDir           string `json:"record_dir"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewOsFs()
	}
	return c.configFs
}

// Fs returns the filesystem rooted at the configuration directory.
func (c *Configuration) Fs() afero.Fs {
	return c.fs()
}

// ShouldColor resolves the color setting, using isTerminal for auto.
func (c *Configuration) ShouldColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

// HistoryPath returns the absolute path of the shell history file, or ""
// if history is disabled.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	return c.resolve(c.HistoryFile)
}

// PrivateKeyPem returns the bytes of the SSH host key.
func (c *Configuration) PrivateKeyPem() ([]byte, error) {
	return afero.ReadFile(c.fs(), c.Server.HostKey)
}

// ScriptFs returns a read only view of the server's script directory.
func (c *Configuration) ScriptFs() afero.Fs {
	return afero.NewReadOnlyFs(afero.NewBasePathFs(c.fs(), c.Server.ScriptDir))
}

// RecordingFs returns the directory session recordings are written to, or
// nil if recording is disabled.
func (c *Configuration) RecordingFs() afero.Fs {
	if c.Server.RecordDir == "" {
		return nil
	}
	return afero.NewBasePathFs(c.fs(), c.Server.RecordDir)
}

func (c *Configuration) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if bp, ok := c.fs().(*afero.BasePathFs); ok {
		if real, err := bp.RealPath(name); err == nil {
			return real
		}
	}
	return name
}

// Default returns the built-in configuration, rooted at the OS filesystem.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewOsFs()
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
