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
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ajroetker/go-lbs/cta"
	"github.com/ajroetker/go-lbs/cta/contrib/workerpool"
)

// app is the state shared by all subcommands once configuration is loaded.
type app struct {
	v    *viper.Viper
	cfg  *Config
	log  zerolog.Logger
	pool *workerpool.Pool
	grid *cta.Grid
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	var configPath string

	root := &cobra.Command{
		Use:          "lbs",
		Short:        "Merge-path load-balancing search",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.bindFlags(cmd)
			return a.setup(configPath)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.pool != nil {
				a.pool.Close()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default ./lbs.yaml if present)")
	flags.Int("nt", 0, "lanes per tile")
	flags.Int("vt", 0, "items per lane")
	flags.Int("workers", 0, "worker goroutines running tiles (0 = GOMAXPROCS)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	configKey(flags, "nt", "nt")
	configKey(flags, "vt", "vt")
	configKey(flags, "workers", "workers")
	configKey(flags, "log-level", "logLevel")

	root.AddCommand(
		newSearchCmd(a),
		newExpandCmd(a),
		newVerifyCmd(a),
		newBenchCmd(a),
	)
	return root
}

const configKeyAnnotation = "lbs_config_key"

// configKey marks flag name as the source of config key.
func configKey(flags *pflag.FlagSet, name, key string) {
	if err := flags.SetAnnotation(name, configKeyAnnotation, []string{key}); err != nil {
		panic(fmt.Sprintf("annotating flag %q: %v", name, err))
	}
}

// bindFlags ties the flags of the command being run to their config keys.
// Only the running command binds, since several commands share keys. Unset
// flags fall through to the environment, the config file and defaults.
func (a *app) bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		keys, ok := f.Annotations[configKeyAnnotation]
		if !ok {
			return
		}
		if err := a.v.BindPFlag(keys[0], f); err != nil {
			panic(fmt.Sprintf("binding flag %q: %v", f.Name, err))
		}
	})
}

func (a *app) setup(configPath string) error {
	cfg, err := LoadConfig(a.v, configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	a.pool = workerpool.New(cfg.Workers)
	a.grid, err = cta.NewGrid(cfg.Params(), cta.WithPool(a.pool), cta.WithLogger(a.log))
	if err != nil {
		return err
	}

	a.log.Debug().
		Str("simd", cta.CurrentName()).
		Stringer("params", cfg.Params()).
		Int("workers", a.pool.NumWorkers()).
		Msg("configured")
	return nil
}
