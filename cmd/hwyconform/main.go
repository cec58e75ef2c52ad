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

// Command hwyconform runs the lane-vector conformance catalog and reports
// which operators disagree with their scalar references.
//
// Usage:
//
//	hwyconform run --species float64x4,float32x8 --iterations 10
//	hwyconform run --species all --ops ADD,SIN --ulp-stats
//	hwyconform ops
//	hwyconform species
//
// The run command exits with status 1 when any scenario mismatched.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// errMismatch is returned by the run command when a scenario failed. The
// summary has already been printed.
var errMismatch = errors.New("conformance mismatches")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hwyconform",
		Short:         "Check lane-vector operators against scalar references",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newOpsCmd(), newSpeciesCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errMismatch) {
			fmt.Fprintf(os.Stderr, "hwyconform: %v\n", err)
		}
		os.Exit(1)
	}
}
