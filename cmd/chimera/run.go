package main

import (
	"context"
	"fmt"

	"github.com/jingkaihe/chimera/pkg/convert"
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/jingkaihe/chimera/pkg/library"
	"github.com/jingkaihe/chimera/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errConversionFailed is returned once the failures have been reported
var errConversionFailed = errors.New("one or more documents failed to convert")

// ConversionConfig holds the flags shared by convert, import and apply
type ConversionConfig struct {
	Type              string
	Filters           []string
	DryRun            bool
	RemoveUnsupported bool
	Parallelism       int
}

// NewConversionConfig returns the defaults, seeded from the config file
func NewConversionConfig() *ConversionConfig {
	return &ConversionConfig{
		RemoveUnsupported: viper.GetBool("remove_unsupported"),
		Parallelism:       viper.GetInt("parallelism"),
	}
}

// Options returns the converter options
func (c *ConversionConfig) Options() convert.Options {
	return convert.Options{
		RemoveUnsupported: c.RemoveUnsupported,
		DryRun:            c.DryRun,
		Parallelism:       c.Parallelism,
	}
}

func addConversionFlags(cmd *cobra.Command) {
	defaults := &ConversionConfig{Parallelism: 1}
	cmd.Flags().StringP("type", "t", defaults.Type, "Only convert commands or skills")
	cmd.Flags().StringSliceP("filter", "f", defaults.Filters, "Only convert documents whose name matches a glob, e.g. 'frontend:*'")
	cmd.Flags().Bool("dry-run", defaults.DryRun, "Show the changes as diffs without writing")
	cmd.Flags().Bool("remove-unsupported", defaults.RemoveUnsupported, "Drop fields the destination agent cannot express")
	cmd.Flags().IntP("parallel", "p", defaults.Parallelism, "Number of documents converted concurrently")
}

func getConversionConfigFromFlags(cmd *cobra.Command) *ConversionConfig {
	config := NewConversionConfig()
	if t, err := cmd.Flags().GetString("type"); err == nil {
		config.Type = t
	}
	if filters, err := cmd.Flags().GetStringSlice("filter"); err == nil {
		config.Filters = filters
	}
	if dryRun, err := cmd.Flags().GetBool("dry-run"); err == nil {
		config.DryRun = dryRun
	}
	if cmd.Flags().Changed("remove-unsupported") {
		config.RemoveUnsupported, _ = cmd.Flags().GetBool("remove-unsupported")
	}
	if cmd.Flags().Changed("parallel") {
		config.Parallelism, _ = cmd.Flags().GetInt("parallel")
	}
	return config
}

// plannedRequest is a request plus the name it is reported under
type plannedRequest struct {
	convert.Request
	label string
}

// planRequests discovers the source documents of from and pairs each with
// its location in to
func planRequests(d *library.Discovery, from, to ir.Identity, config *ConversionConfig) ([]plannedRequest, error) {
	if from == to {
		return nil, errors.Errorf("source and destination are both %s", from)
	}
	types, err := parseTypes(config.Type)
	if err != nil {
		return nil, err
	}

	var planned []plannedRequest
	for _, t := range types {
		entries, err := d.Discover(from, t)
		if err != nil {
			return nil, err
		}
		entries, err = library.Filter(entries, config.Filters)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			destPath, err := d.Location(to, entry.Type, entry.Name)
			if err != nil {
				return nil, err
			}
			planned = append(planned, plannedRequest{
				Request: convert.Request{
					Type:       entry.Type,
					Source:     from,
					SourcePath: entry.Path,
					Dest:       to,
					DestPath:   destPath,
				},
				label: fmt.Sprintf("%s %s (%s -> %s)", entry.Type, entry.Name, from, to),
			})
		}
	}
	return planned, nil
}

// runConversions converts the planned requests and reports every operation
func runConversions(ctx context.Context, planned []plannedRequest, config *ConversionConfig) error {
	reqs := make([]convert.Request, len(planned))
	for i, p := range planned {
		reqs[i] = p.Request
	}

	result := convert.New().Batch(ctx, reqs, config.Options())
	report(planned, result, config.DryRun)

	if result.Failed() {
		return errConversionFailed
	}
	return nil
}

func report(planned []plannedRequest, result *convert.Result, dryRun bool) {
	for i, op := range result.Operations {
		presenter.Operation(string(op.Action), planned[i].label)
		if op.DryRun {
			presenter.Diff(op.Diff)
		}
	}
	for _, err := range result.Errors {
		presenter.Error(err, "")
	}

	prefix := ""
	if dryRun {
		prefix = "to be "
	}
	presenter.Summary([]presenter.Count{
		{Label: prefix + "created", N: result.Count(convert.ActionCreate)},
		{Label: prefix + "updated", N: result.Count(convert.ActionUpdate)},
		{Label: "unchanged", N: result.Count(convert.ActionUnchanged)},
		{Label: "skipped", N: result.Count(convert.ActionSkip)},
		{Label: "failed", N: result.Count(convert.ActionFailed)},
	})
}
