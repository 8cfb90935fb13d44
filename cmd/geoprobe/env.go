package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/geoprobe/geoprobe"
	"github.com/geoprobe/geoprobe/config"
	"github.com/geoprobe/geoprobe/driver"
	"github.com/geoprobe/geoprobe/internal/log"
	"github.com/geoprobe/geoprobe/nas"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on":
		return colorOn, nil
	case "off":
		return colorOff, nil
	default:
		return "", fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// Env is the state shared by subcommands, built from the persistent flags.
type env struct {
	catalog *driver.Catalog
	opts    *driver.Options
	config  config.Provider

	accept *color.Color
	reject *color.Color
	failed *color.Color
	label  *color.Color
}

func newEnv(cmd *cobra.Command) (*env, error) {
	flags := cmd.Flags()

	debug, err := flags.GetBool("debug")
	if err != nil {
		return nil, err
	}
	installLogger(cmd.ErrOrStderr(), debug)

	p, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	allowed, err := flags.GetStringSlice("allowed-drivers")
	if err != nil {
		return nil, err
	}

	c := driver.NewCatalog()
	if err := nas.New(p).Register(c); err != nil {
		return nil, fmt.Errorf("registering drivers: %w", err)
	}

	cf, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}
	mode, err := readColorMode(cf)
	if err != nil {
		return nil, err
	}
	use := mode == colorOn
	if mode == colorAuto {
		f, ok := cmd.OutOrStdout().(*os.File)
		use = ok && isTerminal(f)
	}

	e := &env{
		catalog: c,
		opts:    &driver.Options{AllowedDrivers: allowed},
		config:  p,
		accept:  color.New(color.FgGreen, color.Bold),
		reject:  color.New(color.Faint),
		failed:  color.New(color.FgRed, color.Bold),
		label:   color.New(color.FgCyan),
	}
	for _, col := range []*color.Color{e.accept, e.reject, e.failed, e.label} {
		if use {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return e, nil
}

// LoadConfig layers the configuration sources: command line assignments,
// then the config file, then the process environment.
func loadConfig(cmd *cobra.Command) (config.Provider, error) {
	flags := cmd.Flags()
	sets, err := flags.GetStringArray("config")
	if err != nil {
		return nil, err
	}
	cli := make(config.Map, len(sets))
	for _, s := range sets {
		k, v, err := config.ParseAssignment(s)
		if err != nil {
			return nil, err
		}
		cli[k] = v
	}

	var file config.Map
	path, err := flags.GetString("config-file")
	if err != nil {
		return nil, err
	}
	if path != "" {
		file, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}
	return config.Chain{cli, file, config.Env{}}, nil
}

func installLogger(w io.Writer, debug bool) {
	lvl := slog.LevelInfo
	if debug {
		lvl = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(log.WrapHandler(h)))
}

func (e *env) verdict(v geoprobe.Verdict) string {
	if v.Matched() {
		return e.accept.Sprint(v.String())
	}
	return e.reject.Sprint(v.String())
}
