package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// File is the on-disk config, by default at
// ~/.config/kube-workspaces/config.json. All fields are optional.
type File struct {
	Username   string `json:"username"`
	SSHKeyPath string `json:"ssh_key_path"`
	APIURL     string `json:"api_url"`
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "kube-workspaces", "config.json"), nil
}

// LoadFile reads the config file. A missing file surfaces as fs.ErrNotExist
// so callers can decide whether to initialize interactively.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return f, nil
}

// Write persists the config, creating parent directories as needed.
func (f File) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Initialize prompts for connection settings on in/out and writes the
// resulting config file to path.
func Initialize(in io.Reader, out io.Writer, path string) (File, error) {
	sc := bufio.NewScanner(in)
	prompt := func(msg string) (string, error) {
		fmt.Fprint(out, msg)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return strings.TrimSpace(sc.Text()), nil
	}

	var apiURL string
	for apiURL == "" {
		v, err := prompt("API URL (http://DOMAIN.com[:port]): ")
		if err != nil {
			return File{}, err
		}
		if u, err := url.Parse(v); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
			apiURL = v
		}
	}

	username, err := prompt("Username (leave empty to use current system user): ")
	if err != nil {
		return File{}, err
	}

	keyPath, err := initializeKeyPath(prompt, out)
	if err != nil {
		return File{}, err
	}

	f := File{Username: username, SSHKeyPath: keyPath, APIURL: apiURL}
	if err := f.Write(path); err != nil {
		return File{}, fmt.Errorf("write config file: %w", err)
	}
	fmt.Fprintf(out, "Config written to %s\n", path)
	return f, nil
}

func initializeKeyPath(prompt func(string) (string, error), out io.Writer) (string, error) {
	def := DefaultKeyPath()
	if isFile(def) {
		fmt.Fprintln(out, "Default SSH key detected at "+def)
		for {
			p, err := prompt("Alternative key (leave empty to use default): ")
			if err != nil {
				return "", err
			}
			if p == "" {
				return def, nil
			}
			if isFile(p) {
				return p, nil
			}
			fmt.Fprintln(out, "Path is not valid")
		}
	}
	fmt.Fprintln(out, "No default SSH key detected")
	for {
		p, err := prompt("SSH key path: ")
		if err != nil {
			return "", err
		}
		if p != "" && isFile(p) {
			return p, nil
		}
		fmt.Fprintln(out, "Path is not valid")
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
