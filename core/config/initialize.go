package config

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	gossh "golang.org/x/crypto/ssh"
)

const exampleScriptName = "squares.step"

var exampleScript = []byte(`{ Prints the square of a number. A call ends the sequence it
  appears in, so println lives inside the function. }
(sq dup * println)
"_4 squared is " 4 @sq
`)

// Initialize writes the default configuration, a host key and the script
// directory to dir. Existing files are left alone.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absDir, 0700); err != nil {
		return nil, err
	}

	configFs := afero.NewBasePathFs(afero.NewOsFs(), absDir)
	cfg := defaultConfig()
	cfg.configFs = configFs

	if err := writeIfMissing(configFs, logger, ConfigurationName, 0600, func() ([]byte, error) {
		return defaultConfigData, nil
	}); err != nil {
		return nil, err
	}

	if err := writeIfMissing(configFs, logger, cfg.Server.HostKey, 0600, GenerateHostKey); err != nil {
		return nil, err
	}

	if err := configFs.MkdirAll(cfg.Server.ScriptDir, 0700); err != nil {
		return nil, err
	}
	if err := writeIfMissing(configFs, logger, filepath.Join(cfg.Server.ScriptDir, exampleScriptName), 0600, func() ([]byte, error) {
		return exampleScript, nil
	}); err != nil {
		return nil, err
	}

	if cfg.Server.RecordDir != "" {
		if err := configFs.MkdirAll(cfg.Server.RecordDir, 0700); err != nil {
			return nil, err
		}
	}

	return Load(absDir)
}

func writeIfMissing(fs afero.Fs, logger *log.Logger, name string, perm os.FileMode, contents func() ([]byte, error)) error {
	exists, err := afero.Exists(fs, name)
	switch {
	case err != nil:
		return err
	case exists:
		logger.Printf("- %s exists, skipping", name)
		return nil
	}

	data, err := contents()
	if err != nil {
		return fmt.Errorf("couldn't create %s: %w", name, err)
	}

	logger.Printf("- Writing %s", name)
	return afero.WriteFile(fs, name, data, perm)
}

// GenerateHostKey creates a PEM encoded ed25519 private key suitable for
// use as an SSH host key.
func GenerateHostKey() ([]byte, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	der, err := x509.MarshalPKCS8PrivateKey(privateKey)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// HostSigner parses the configured host key.
func (c *Configuration) HostSigner() (gossh.Signer, error) {
	keyPem, err := c.PrivateKeyPem()
	if err != nil {
		return nil, err
	}
	return gossh.ParsePrivateKey(keyPem)
}
