package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Env holds environment-variable defaults, the lowest precedence layer
// above OS detection.
type Env struct {
	Username   string `envconfig:"KUBE_WORKSPACES_USER"`
	SSHKeyPath string `envconfig:"KUBE_WORKSPACES_SSH_KEY_PATH"`
	APIURL     string `envconfig:"KUBE_WORKSPACES_API_URL"`
	LogLevel   string `envconfig:"KUBE_WORKSPACES_LOG_LEVEL" default:"warn"`
}

func LoadEnv() (Env, error) {
	var e Env
	err := envconfig.Process("", &e)
	return e, err
}

// Flags carries the global CLI flag values, the highest precedence layer.
type Flags struct {
	Username   string
	SSHKeyPath string
	APIURL     string
}

// Config is the fully resolved identity used for every control-plane
// request. Built once per invocation and immutable afterwards.
type Config struct {
	Username          string
	SSHPublicKey      string
	SSHPrivateKeyPath string
	APIURL            string
}

// Resolve merges the layers into a Config, reading the SSH public key from
// disk. Precedence: flag > config file > environment > OS default.
func Resolve(flags Flags, file File, env Env) (Config, error) {
	username := firstNonEmpty(flags.Username, file.Username, env.Username)
	if username == "" {
		username = CurrentUsername()
	}

	keyPath := firstNonEmpty(flags.SSHKeyPath, file.SSHKeyPath, env.SSHKeyPath)
	if keyPath == "" {
		keyPath = DefaultKeyPath()
	}
	key, err := os.ReadFile(keyPath)
	if err != nil {
		return Config{}, fmt.Errorf(
			"could not read SSH public key at %s (configure one in the config file or with --ssh-key-path): %w",
			keyPath, err)
	}

	apiURL := firstNonEmpty(flags.APIURL, file.APIURL, env.APIURL)
	if apiURL == "" {
		return Config{}, errors.New(
			"could not determine API endpoint: specify it in the config file or with --api=http://...")
	}

	return Config{
		Username:          username,
		SSHPublicKey:      strings.TrimSpace(string(key)),
		SSHPrivateKeyPath: strings.TrimSuffix(keyPath, ".pub"),
		APIURL:            strings.TrimSuffix(apiURL, "/"),
	}, nil
}

// CurrentUsername returns the invoking OS user. Used both as the default
// workspace username and to decide whether ssh needs an explicit user@.
func CurrentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

// DefaultKeyPath is the public key tried when nothing else is configured.
func DefaultKeyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ssh", "id_rsa.pub")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
