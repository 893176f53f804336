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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-lbs/cta"
	"github.com/ajroetker/go-lbs/cta/contrib/workload"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestSearchCommand(t *testing.T) {
	out := run(t, "search", "--lengths", "3,0,4", "--nt", "4", "--vt", "2")

	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	want := [][]string{
		{"index", "segment", "rank"},
		{"0", "0", "0"},
		{"1", "0", "1"},
		{"2", "0", "2"},
		{"3", "2", "0"},
		{"4", "2", "1"},
		{"5", "2", "2"},
		{"6", "2", "3"},
	}
	assert.Equal(t, want, rows)
}

func TestExpandCommand(t *testing.T) {
	out := run(t, "expand", "--lengths", "2,0,1", "--values", "1.5,9,-2")
	assert.Equal(t, "1.5 1.5 -2\n", out)
}

func TestExpandCommandMismatch(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"expand", "--lengths", "2,0,1", "--values", "1"})
	assert.Error(t, cmd.Execute())
}

func TestVerifyCommand(t *testing.T) {
	run(t, "verify", "--segments", "2000", "--mean", "3", "--empty", "0.25", "--nt", "16", "--vt", "5")
}

func TestBenchCommand(t *testing.T) {
	out := run(t, "bench", "--segments", "500", "--iters", "2", "--nt", "8", "--vt", "3")
	assert.Contains(t, out, "nt=8 vt=3 nv=24")
	assert.Contains(t, out, "segments=500")
}

func TestSearchCommandNoLengths(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"search"})
	assert.ErrorIs(t, cmd.Execute(), errNoSegments)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, cta.DefaultParams(), cfg.Params())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, workload.Poisson, cfg.Workload.Distribution)
	assert.Equal(t, 100_000, cfg.Workload.Segments)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lbs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
nt: 64
vt: 9
workload:
  distribution: uniform
  meanLength: 12.5
`), 0o644))
	t.Setenv("LBS_VT", "5")
	t.Setenv("LBS_WORKLOAD_SEED", "77")

	cfg, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, cta.Params{NT: 64, VT: 5}, cfg.Params(), "environment overrides the file")
	assert.Equal(t, workload.Uniform, cfg.Workload.Distribution)
	assert.Equal(t, 12.5, cfg.Workload.MeanLength)
	assert.Equal(t, uint64(77), cfg.Workload.Seed)
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("LBS_VT", "64")
	_, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit config path must exist")

	t.Chdir(t.TempDir())
	_, err = LoadConfig(viper.New(), "")
	assert.ErrorIs(t, err, cta.ErrInvalidParams)
}
