// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ajroetker/go-lbs/cta"
	"github.com/ajroetker/go-lbs/cta/contrib/workload"
)

// Config stores the configuration of the lbs command.
// Values are read by viper from flags, LBS_* environment variables and an
// optional YAML file, in that order of precedence.
type Config struct {
	NT       int           `mapstructure:"nt"`
	VT       int           `mapstructure:"vt"`
	Workers  int           `mapstructure:"workers"`
	LogLevel string        `mapstructure:"logLevel"`
	Workload workload.Spec `mapstructure:"workload"`
}

// Params returns the tile shape.
func (c *Config) Params() cta.Params {
	return cta.Params{NT: c.NT, VT: c.VT}
}

// setDefaults registers every key, which also makes it visible to
// AutomaticEnv.
func setDefaults(v *viper.Viper) {
	def := cta.DefaultParams()
	v.SetDefault("nt", def.NT)
	v.SetDefault("vt", def.VT)
	v.SetDefault("workers", 0)
	v.SetDefault("logLevel", "info")
	v.SetDefault("workload.segments", 100_000)
	v.SetDefault("workload.meanLength", 8.0)
	v.SetDefault("workload.distribution", string(workload.Poisson))
	v.SetDefault("workload.emptyFraction", 0.1)
	v.SetDefault("workload.seed", 1)
}

// LoadConfig reads configuration into a Config. configPath may be empty, in
// which case lbs.yaml is looked up in the working directory and skipped if
// absent.
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("lbs")
		v.SetConfigType("yaml")
	}
	setDefaults(v)

	v.SetEnvPrefix("lbs")
	v.AutomaticEnv() // e.g. workload.meanLength reads LBS_WORKLOAD_MEANLENGTH
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Params().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
