package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/lzjever/kube-workspaces/internal/config"
	"github.com/lzjever/kube-workspaces/internal/observability"
	"github.com/lzjever/kube-workspaces/internal/workspace"
)

// configPath returns the config file location, honoring --config.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.DefaultPath()
}

// resolveConfig merges all config layers. A missing config file triggers
// interactive initialization, but only when no API URL was supplied via
// flag or environment.
func resolveConfig() (config.Config, config.Env, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return config.Config{}, config.Env{}, fmt.Errorf("read environment: %w", err)
	}

	path, err := configPath()
	if err != nil {
		return config.Config{}, env, err
	}

	file, err := config.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if flagAPI == "" && env.APIURL == "" {
			file, err = config.Initialize(os.Stdin, os.Stdout, path)
		} else {
			file, err = config.File{}, nil
		}
	}
	if err != nil {
		return config.Config{}, env, err
	}

	cfg, err := config.Resolve(config.Flags{
		Username:   flagUser,
		SSHKeyPath: flagSSHKeyPath,
		APIURL:     flagAPI,
	}, file, env)
	return cfg, env, err
}

// setup resolves config and builds the shared client and logger. Exits with
// code 1 on configuration failure, before any request is made.
func setup() (config.Config, *workspace.Client, *zap.Logger) {
	cfg, env, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	level := flagLogLevel
	if level == "" {
		level = env.LogLevel
	}
	log, err := observability.NewLogger(level)
	if err != nil {
		log = zap.NewNop()
	}

	client := workspace.NewClient(cfg.APIURL, cfg.Username, cfg.SSHPublicKey, log)
	return cfg, client, log
}
