/*
Copyright 2026 the Loonycorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/loonycorn/bugs-api-tests/pkg/bugsuite"
	"github.com/loonycorn/bugs-api-tests/pkg/client"
	"github.com/loonycorn/bugs-api-tests/pkg/constants"
	"github.com/loonycorn/bugs-api-tests/pkg/diagnostics"
	"github.com/loonycorn/bugs-api-tests/pkg/options"
	"github.com/loonycorn/bugs-api-tests/pkg/report"
	"github.com/loonycorn/bugs-api-tests/pkg/scenario"

	cr "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

var errScenariosFailed = errors.New("scenarios did not pass")

func run(ctx context.Context, clientOptions client.Options, resultsDir string) error {
	c, err := client.New(clientOptions)
	if err != nil {
		return err
	}

	sinks := diagnostics.Sinks{
		diagnostics.NewLogSink(log.Log.WithName("http")),
	}

	var results *report.Directory

	if resultsDir != "" {
		if results, err = report.NewDirectory(resultsDir); err != nil {
			return err
		}

		sinks = append(sinks, results)
	}

	plan, err := bugsuite.NewPlan(c)
	if err != nil {
		return err
	}

	r := scenario.NewRunner(plan, scenario.WithDiagnostics(sinks), scenario.WithLogger(log.Log))

	summary := r.Run(ctx)

	for _, result := range summary.Results {
		switch {
		case result.Err != nil:
			fmt.Printf("%-8s %-20s %s\n", result.State, result.Name, result.Err)
		case len(result.Blockers) > 0:
			fmt.Printf("%-8s %-20s blocked by %v\n", result.State, result.Name, result.Blockers)
		default:
			fmt.Printf("%-8s %-20s %s\n", result.State, result.Name, result.Duration)
		}
	}

	fmt.Println(summary)

	if results != nil {
		if err := results.WriteSummary(summary); err != nil {
			return err
		}

		if err := results.Err(); err != nil {
			return err
		}
	}

	if !summary.Succeeded() {
		return errScenariosFailed
	}

	return nil
}

func main() {
	var (
		coreOptions options.Options
		resultsDir  string
	)

	clientOptions := client.DefaultOptions()

	coreOptions.AddFlags(pflag.CommandLine)
	clientOptions.AddFlags(pflag.CommandLine)
	pflag.StringVar(&resultsDir, "results-dir", "", "Directory to write request and response details and a run summary to")

	pflag.Parse()

	coreOptions.SetupLogging()

	logger := log.Log.WithName("init")
	logger.Info("suite starting", "application", constants.Application, "version", constants.Version, "revision", constants.Revision)

	ctx := cr.SetupSignalHandler()

	if err := run(ctx, clientOptions, resultsDir); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
