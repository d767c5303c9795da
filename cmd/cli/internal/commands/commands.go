package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/classpilot/classpilot-go/internal/api"
	"github.com/classpilot/classpilot-go/internal/config"
	"github.com/classpilot/classpilot-go/internal/logger"
	"github.com/classpilot/classpilot-go/internal/service"
	"github.com/classpilot/classpilot-go/internal/session"
)

type Globals struct {
	Debug   bool
	Version string
}

// Profile is the optional CLI configuration file at
// ~/.classpilot/config.yaml. Values here override the environment.
type Profile struct {
	ServerURL  string `yaml:"server_url"`
	SessionDir string `yaml:"session_dir"`
}

func loadProfile() (*Profile, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Profile{}, nil
	}

	data, err := os.ReadFile(filepath.Join(home, ".classpilot", "config.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Profile{}, nil
		}
		return nil, fmt.Errorf("failed to read CLI config: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse CLI config: %w", err)
	}
	return &profile, nil
}

// buildServices is the CLI composition root: one config, one session store,
// one API client, one set of services.
func buildServices(globals *Globals) (*service.Services, error) {
	log := logger.Setup(globals.Debug)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	profile, err := loadProfile()
	if err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL()
	if profile.ServerURL != "" {
		baseURL = profile.ServerURL
	}
	sessionDir := cfg.SessionDir
	if profile.SessionDir != "" {
		sessionDir = profile.SessionDir
	}

	backend, err := session.NewFileBackend(sessionDir)
	if err != nil {
		return nil, err
	}

	client := api.New(api.Config{
		BaseURL:       baseURL,
		Timeout:       cfg.Timeout(),
		EnableCaching: cfg.HTTPCache,
		Logger:        log,
	}, session.NewStore(backend))

	return service.New(client), nil
}
