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

// Command lbs runs merge-path load-balancing searches from the command line.
//
// Usage:
//
//	lbs search --lengths 3,0,4          # index, segment and rank of every output
//	lbs expand --lengths 3,0,4 --values 1.5,2,7
//	lbs verify --segments 100000 --mean 8 --empty 0.1
//	lbs bench --iters 20 --nt 128 --vt 11
//
// Configuration is read from flags, LBS_* environment variables (LBS_NT,
// LBS_VT, LBS_WORKERS, LBS_LOGLEVEL, LBS_WORKLOAD_SEGMENTS, ...) and an
// optional lbs.yaml file.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
