// Package main implements the fsdoc CLI, which turns Onshape documenter
// attributes into staged reStructuredText documentation.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/grahms/fsdoc"
	"github.com/grahms/fsdoc/internal/config"
	"github.com/grahms/fsdoc/internal/logging"
	"github.com/grahms/fsdoc/rst"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by every command of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg   *config.Config
	log   *zap.Logger
	runID string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "fsdoc",
		Short: "Extract documenter attributes and stage rst documentation",
		Long: `fsdoc decodes the attributes of an Onshape Documenter feature, as
returned by a FeatureScript evaluation, into design variables and stages the
referenced templates, index and treatment process descriptions into a
Sphinx documentation tree.

Configuration is read from --config and FSDOC_ environment variables, e.g.
FSDOC_STAGING_DOCS_DIR=docs.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newExtractCmd(a),
		newSectionsCmd(a),
		newMergeCmd(a),
		newSubstituteCmd(a),
		newValidateCmd(a),
		newWatchCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	log, err := logging.NewWithWriter(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.runID = uuid.NewString()
	a.log = log.With(zap.String("run_id", a.runID), zap.String("command", cmd.Name()))
	return nil
}

func (a *app) merger() *rst.Merger {
	return &rst.Merger{
		OutlineStart:     a.cfg.Outline.Start,
		OutlineEnd:       a.cfg.Outline.End,
		HeadingDelimiter: a.cfg.Headings.Delimiter,
	}
}

func (a *app) stagingConfig(docsDir string) fsdoc.StagingConfig {
	s := a.cfg.Staging
	if docsDir == "" {
		docsDir = s.DocsDir
	}
	return fsdoc.StagingConfig{
		DocsDir:          docsDir,
		BaseDir:          s.BaseDir,
		IndexFile:        s.IndexFile,
		NewIndexFile:     s.NewIndexFile,
		ProcessFile:      s.ProcessFile,
		ProcessSourceDir: s.ProcessSourceDir,
		ProcessPrefix:    s.ProcessPrefix,
	}
}

func (a *app) validators() (*fsdoc.ValidatorRegistry, error) {
	reg := fsdoc.NewValidatorRegistry()
	reg.Require(a.cfg.Validation.Required...)
	for _, r := range a.cfg.Validation.Patterns {
		if err := reg.RegisterRegex(r.Variable, r.Pattern, r.Description); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// openInput opens path for reading, or stdin for "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, nil
}
