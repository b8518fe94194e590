package config

import (
	"io/ioutil"
	"log"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("PrivateKeyPem", func(t *testing.T) {
		keyPem, err := cfg.PrivateKeyPem()
		assert.Nil(t, err)
		assert.NotNil(t, keyPem)
	})

	t.Run("HostSigner", func(t *testing.T) {
		signer, err := cfg.HostSigner()
		assert.Nil(t, err)
		if assert.NotNil(t, signer) {
			assert.Equal(t, "ssh-ed25519", signer.PublicKey().Type())
		}
	})

	t.Run("ScriptFs", func(t *testing.T) {
		exists, err := afero.Exists(cfg.ScriptFs(), exampleScriptName)
		assert.Nil(t, err)
		assert.True(t, exists)

		assert.NotNil(t, afero.WriteFile(cfg.ScriptFs(), "new.step", []byte("1"), 0600), "script dir should be read only")
	})

	t.Run("RecordingFs", func(t *testing.T) {
		recordings := cfg.RecordingFs()
		if assert.NotNil(t, recordings) {
			assert.Nil(t, afero.WriteFile(recordings, "session.cast", []byte("{}\n"), 0600))
		}

		exists, err := afero.DirExists(afero.NewOsFs(), filepath.Join(tempDir, "recordings"))
		assert.Nil(t, err)
		assert.True(t, exists)

		cfg := defaultConfig()
		cfg.Server.RecordDir = ""
		assert.Nil(t, cfg.RecordingFs(), "empty record_dir disables recording")
	})

	t.Run("HistoryPath", func(t *testing.T) {
		assert.Equal(t, filepath.Join(tempDir, ".step_history"), cfg.HistoryPath())
	})

	t.Run("Idempotent", func(t *testing.T) {
		before, err := cfg.PrivateKeyPem()
		assert.Nil(t, err)

		_, err = Initialize(tempDir, log.New(ioutil.Discard, "", 0))
		assert.Nil(t, err)

		after, err := cfg.PrivateKeyPem()
		assert.Nil(t, err)
		assert.Equal(t, before, after, "host key should not be regenerated")
	})
}

func TestLoad_configPath(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(filepath.Join(tempDir, ConfigurationName))
	assert.Nil(t, err)
	assert.Equal(t, "step> ", cfg.Prompt)
}
