package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/grahms/fsdoc"
)

type extractOptions struct {
	fields  []string
	typeTag string
	format  string
	stage   bool
	docsDir string
	link    string
	audit   bool
}

func (o *extractOptions) addFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVar(&o.fields, "field", nil, "documenter field to extract (repeatable, default from config)")
	f.StringVar(&o.typeTag, "type-tag", "", "type tag of documenter attributes (default from config)")
	f.StringVar(&o.format, "format", "json", "output format: json or yaml")
	f.BoolVar(&o.stage, "stage", false, "copy templates and merge index and process documents into the docs tree")
	f.StringVar(&o.docsDir, "docs-dir", "", "documentation root used when staging (default from config)")
	f.StringVar(&o.link, "link", "", "Onshape element URL the response was evaluated in, for logging")
	f.BoolVar(&o.audit, "audit", false, "log every skipped node")
}

func newExtractCmd(a *app) *cobra.Command {
	o := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract <response.json|->",
		Short: "Decode documenter attributes from a FeatureScript response",
		Long: `Decode the documenter attributes found at result.message.value of a
FeatureScript evaluation response and print the variables, templates and
processes.

Examples:
  # Print variables as YAML
  fsdoc extract --format yaml response.json

  # Only the variables field, from stdin
  cat response.json | fsdoc extract --field variables -

  # Stage templates, index and processes into docs/
  fsdoc extract --stage --docs-dir docs response.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(o.format); err != nil {
				return err
			}
			res, err := a.extract(cmd, args[0], o)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), res, o.format)
		},
	}
	o.addFlags(cmd)
	return cmd
}

// extract runs one extraction with the configured extractor, staging events
// when requested.
func (a *app) extract(cmd *cobra.Command, input string, o *extractOptions) (*fsdoc.Result, error) {
	log := a.log
	if o.link != "" {
		el, err := fsdoc.ParseElementURL(o.link)
		if err != nil {
			return nil, err
		}
		log = log.With(
			zap.String("document", el.DocumentID),
			zap.String(el.WVM, el.WVMID),
			zap.String("element", el.ElementID),
			zap.String("eval_path", el.EvalPath()),
		)
	}

	in, err := openInput(cmd, input)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	stage := o.stage || a.cfg.Staging.Enabled
	res, err := a.extractor(o, stage, log).ExtractResponse(in, a.fields(o)...)
	if err != nil {
		return nil, err
	}
	log.Info("extracted documenter attributes",
		zap.String("input", input),
		zap.Int("variables", len(res.Variables)),
		zap.Strings("templates", res.Templates),
		zap.Strings("processes", res.Processes),
		zap.Bool("staged", stage))
	return res, nil
}

func (a *app) fields(o *extractOptions) []string {
	if len(o.fields) > 0 {
		return o.fields
	}
	return a.cfg.Documenter.Fields
}

func (a *app) extractor(o *extractOptions, stage bool, log *zap.Logger) *fsdoc.Extractor {
	typeTag := o.typeTag
	if typeTag == "" {
		typeTag = a.cfg.Documenter.TypeTag
	}
	policy := fsdoc.UnknownDrop
	if o.audit || a.cfg.Documenter.Unknown == "audit" {
		policy = fsdoc.UnknownAudit
	}

	opts := []func(*fsdoc.Extractor){
		fsdoc.WithTypeTag(typeTag),
		fsdoc.WithUnknownPolicy(policy),
		fsdoc.WithLogger(log),
	}
	if stage {
		stager := fsdoc.NewStager(a.stagingConfig(o.docsDir), a.merger(), log)
		opts = append(opts, fsdoc.WithSink(stager))
	}
	return fsdoc.NewExtractor(fsdoc.DefaultRegistry(), opts...)
}

func checkFormat(format string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
	return nil
}

func writeResult(w io.Writer, res *fsdoc.Result, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
