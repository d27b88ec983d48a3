// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/albertocavalcante/antsy/generator"
	"github.com/albertocavalcante/antsy/internal/config"
	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/fetch"
	"github.com/albertocavalcante/antsy/internal/logging"
	"github.com/albertocavalcante/antsy/internal/sink"
)

func runGenerate(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	gen, err := generator.Lookup(cfg.Generator)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	if !cfg.Watch {
		return generate(ctx, cfg, gen, out)
	}
	return watch(ctx, cfg, func(ctx context.Context) error {
		return generate(ctx, cfg, gen, out)
	})
}

// generate loads the model, runs gen and writes its units.
func generate(ctx context.Context, cfg *config.Config, gen generator.Generator, out io.Writer) error {
	log := logging.Named("cli")
	start := time.Now()

	res, err := fetch.Fetch(ctx, fetch.Options{
		Ref:        cfg.Ref,
		ModelPath:  cfg.Model,
		SourceDirs: cfg.Src,
		RepoDir:    cfg.Repo,
		Framework:  cfg.Framework,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		return errors.Wrap(err, "load model")
	}
	log.Debugw("model loaded", "source", res.Source, "types", len(res.Model.Types), "commit", res.CommitHash)

	gcfg := generator.Config{
		OutputDir:      cfg.Dest,
		Catalog:        cfg.Catalog,
		OutPackage:     cfg.OutPackage,
		RuntimePackage: cfg.RuntimePackage,
		FrameworkRoot:  cfg.Framework,
		TaskType:       cfg.TaskType,
		ProjectType:    cfg.ProjectType,
		Types:          cfg.Types,
		Source:         res.Source,
		Ref:            res.Ref,
		CommitHash:     res.CommitHash,
		Options:        cfg.Options,
	}

	// Units go straight to the destination as they are synthesized; on
	// failure the ones already written stay.
	if cfg.DryRun {
		dry := &sink.DryRun{}
		if err := gen.Generate(ctx, res.Model, gcfg, dry); err != nil {
			return errors.Wrapf(err, "%s generator", gen.Metadata().Name)
		}
		n, size := dry.Stats()
		fmt.Fprintf(out, "dry run: %d files, %d bytes\n", n, size)
		return nil
	}

	dst := sink.NewFilesystem(cfg.Dest)
	err = gen.Generate(ctx, res.Model, gcfg, dst)
	n, _ := dst.Stats()
	if err != nil {
		return errors.Wrapf(err, "%s generator (%d files written)", gen.Metadata().Name, n)
	}
	log.Infow("generated", "generator", gen.Metadata().Name, "files", n, "dest", cfg.Dest,
		"elapsed", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "wrote %d files to %s\n", n, cfg.Dest)
	return nil
}
