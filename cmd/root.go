/*
Copyright © 2021 Joseph Lewis <joseph@josephlewis.net>

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
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/josephlewis42/parallel/core/arguments"
	"github.com/josephlewis42/parallel/core/config"
	"github.com/josephlewis42/parallel/core/engine"
	"github.com/josephlewis42/parallel/core/filepaths"
	"github.com/josephlewis42/parallel/core/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var colorBoldRed = color.New(color.FgRed, color.Bold)

// environment holds the process-level dependencies of the root command.
type environment struct {
	fs     afero.Fs
	getenv func(string) string
	cores  int
}

func osEnvironment() environment {
	return environment{
		fs:     afero.NewOsFs(),
		getenv: os.Getenv,
		cores:  runtime.NumCPU(),
	}
}

func newRootCmd(env environment) *cobra.Command {
	return &cobra.Command{
		Use:   "parallel [options] [command] [::: inputs...] [:::: files...]",
		Short: "Run a command for each input, in parallel.",
		Long: `Generates every combination of the input lists (or reads inputs from
stdin), compiles the command template once and prints the command each job
would run. Use --help for the full list of options.`,
		// The argument grammar handles options itself.
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, env)
		},
	}
}

func run(cmd *cobra.Command, args []string, env environment) error {
	cfg, err := config.FromEnv(env.fs, env.getenv)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	grammar, err := arguments.ParseGrammar(env.fs, args, env.cores)
	if err != nil {
		return err
	}
	if grammar.Exit != nil {
		_, err := io.WriteString(cmd.OutOrStdout(), grammar.Exit.Message)
		return err
	}

	log, err := logger.New(cmd.ErrOrStderr(), logger.Options{
		Format:  cfg.LogFormat,
		Verbose: grammar.Flags.Verbose,
		Quiet:   grammar.Flags.Quiet,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	path, err := filepaths.Unprocessed(env.fs, cfg.TempDir)
	if err != nil {
		return err
	}
	if !cfg.KeepBackingFile {
		defer func() {
			if err := env.fs.Remove(path); err != nil {
				log.Warn("couldn't remove backing file", zap.String("path", path), zap.Error(err))
			}
		}()
	}

	parser := &arguments.Parser{
		Fs:         env.fs,
		Stdin:      cmd.InOrStdin(),
		Cores:      env.cores,
		BufferSize: cfg.BufferSize,
		Path:       path,
		Log:        log,
	}
	parsed, err := parser.Build(grammar)
	if err != nil {
		return err
	}
	defer parsed.Inputs.Close()

	dryRun := &engine.DryRun{Out: cmd.OutOrStdout(), Log: log}
	return dryRun.Run(cmd.Context(), engine.NewPlan(parsed))
}

// execute runs cmd with args and returns the process exit status.
func execute(cmd *cobra.Command, args []string) int {
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		colorBoldRed.Fprintf(cmd.ErrOrStderr(), "parallel: %v\n", err)
		return 1
	}
	return 0
}

// Execute runs the root command with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(execute(newRootCmd(osEnvironment()), os.Args[1:]))
}
