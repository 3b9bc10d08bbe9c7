package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"modviz/internal/modem"
)

// Config holds server settings and the simulation defaults handed to
// clients that omit parameters. Everything has a usable zero-config
// fallback; a YAML file only overrides what it mentions.
type Config struct {
	Addr      string   `yaml:"addr"`
	StaticDir string   `yaml:"staticDir"`
	Defaults  Defaults `yaml:"defaults"`
}

// Defaults mirrors modem.Params in YAML-friendly form.
type Defaults struct {
	Scheme        string  `yaml:"scheme"`
	Bits          string  `yaml:"bits"`
	BitRate       float64 `yaml:"bitRate"`
	Amplitude     float64 `yaml:"amplitude"`
	CarrierFreq   float64 `yaml:"carrierFreq"`
	SamplesPerBit int     `yaml:"samplesPerBit"`
	SNRdB         float64 `yaml:"snrDb"`
	FreqSep       float64 `yaml:"freqSeparation"`
}

// searchPaths is tried in order when no explicit config path is given.
var searchPaths = []string{
	"modviz.yaml",
	"config/modviz.yaml",
}

// Default returns the built-in configuration.
func Default() *Config {
	p := modem.DefaultParams()
	return &Config{
		Addr:      "0.0.0.0:8080",
		StaticDir: "./web/static",
		Defaults: Defaults{
			Scheme:        p.Scheme.String(),
			Bits:          "10110011",
			BitRate:       p.BitRate,
			Amplitude:     p.Amplitude,
			CarrierFreq:   p.CarrierFreq,
			SamplesPerBit: p.SamplesPerBit,
			SNRdB:         p.SNRdB,
			FreqSep:       p.FreqSep,
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the first config file found on the search path, or the
// built-in defaults when none exists. A file that exists but fails to
// load is reported and skipped rather than silently ignored.
func Discover() *Config {
	for _, path := range searchPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := Load(path)
		if err != nil {
			log.Printf("Ignoring config %s: %v", path, err)
			continue
		}
		return cfg
	}
	return Default()
}

// Params converts the defaults into a simulation parameter set.
func (d Defaults) Params() (modem.Params, error) {
	scheme, err := modem.ParseScheme(d.Scheme)
	if err != nil {
		return modem.Params{}, err
	}
	return modem.Params{
		Scheme:        scheme,
		BitRate:       d.BitRate,
		Amplitude:     d.Amplitude,
		CarrierFreq:   d.CarrierFreq,
		SamplesPerBit: d.SamplesPerBit,
		SNRdB:         d.SNRdB,
		FreqSep:       d.FreqSep,
	}, nil
}
