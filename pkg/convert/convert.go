// Package convert runs the conversion pipeline: parse a source document,
// translate it through the Semantic IR and hand the rendered result to a
// Writer. Only parsing and writing touch storage.
package convert

import (
	"context"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/jingkaihe/chimera/pkg/agents"
	"github.com/jingkaihe/chimera/pkg/document"
	"github.com/jingkaihe/chimera/pkg/ir"
	"github.com/jingkaihe/chimera/pkg/logger"
	"github.com/jingkaihe/chimera/pkg/telemetry"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Request names one document to convert. SourcePath and DestPath are the
// command file or the skill directory.
type Request struct {
	Type       document.ContentType
	Source     ir.Identity
	SourcePath string
	Dest       ir.Identity
	DestPath   string
}

// Name returns the document name
func (r Request) Name() string {
	return (&document.Document{Type: r.Type, Path: r.SourcePath}).Name()
}

// Options configures a conversion run
type Options struct {
	// RemoveUnsupported drops fields the destination cannot express
	// instead of carrying them over as opaque fields
	RemoveUnsupported bool
	// DryRun computes a diff instead of writing
	DryRun bool
	// Parallelism bounds concurrent conversions in a batch, 1 or less is sequential
	Parallelism int
}

// Action is what a conversion did, or would do in a dry run, to its destination
type Action string

// Actions
const (
	ActionCreate    Action = "create"
	ActionUpdate    Action = "update"
	ActionUnchanged Action = "unchanged"
	ActionSkip      Action = "skip"
	ActionFailed    Action = "failed"
)

// Operation is the outcome of one conversion
type Operation struct {
	Request Request
	Action  Action
	// Diff is the unified diff of the destination, set in dry runs
	Diff   string
	DryRun bool
}

// Converter converts documents between agents
type Converter struct {
	registry *agents.Registry
	writer   Writer
}

// Option configures a Converter
type Option func(*Converter)

// WithRegistry overrides the adapter registry
func WithRegistry(registry *agents.Registry) Option {
	return func(c *Converter) {
		c.registry = registry
	}
}

// WithWriter overrides the destination writer
func WithWriter(w Writer) Option {
	return func(c *Converter) {
		c.writer = w
	}
}

// New creates a Converter writing to the filesystem by default
func New(opts ...Option) *Converter {
	c := &Converter{
		registry: agents.NewRegistry(),
		writer:   &FSWriter{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert converts a single document
func (c *Converter) Convert(ctx context.Context, req Request, opts Options) (Operation, error) {
	var op Operation
	attrs := telemetry.ConversionAttributes(string(req.Type), req.Source.String(), req.Dest.String(), req.SourcePath)
	err := telemetry.WithSpan(ctx, "convert.document", func(ctx context.Context) error {
		var err error
		op, err = c.convert(ctx, req, opts)
		return err
	}, attrs...)
	return op, err
}

func (c *Converter) convert(ctx context.Context, req Request, opts Options) (Operation, error) {
	op := Operation{Request: req, Action: ActionFailed, DryRun: opts.DryRun}
	log := logger.G(ctx).WithFields(logrus.Fields{
		"kind":   req.Type,
		"source": req.Source,
		"dest":   req.Dest,
		"path":   req.SourcePath,
	})

	if req.Source == req.Dest && samePath(req.SourcePath, req.DestPath) {
		log.Debug("source and destination are the same document, skipping")
		op.Action = ActionSkip
		return op, nil
	}

	src, err := c.registry.Get(req.Source)
	if err != nil {
		return op, err
	}
	dst, err := c.registry.Get(req.Dest)
	if err != nil {
		return op, err
	}
	fail := func(err error) (Operation, error) {
		return op, document.NewConversionError(req.SourcePath, req.Source.String(), req.Dest.String(), err)
	}

	doc, err := src.Parse(req.Type, req.SourcePath)
	if err != nil {
		return op, err
	}
	if err := src.Validate(doc); err != nil {
		return op, err
	}

	semantic, err := src.ToIR(doc, agents.ToIROptions{DestinationType: req.Dest})
	if err != nil {
		return fail(err)
	}
	semantic.Meta.TargetType = req.Dest
	semantic.Remap(dst.Dialect())

	if !req.Source.IsHub() {
		carryUnsupported(semantic, src, dst)
	}
	if dst.RequiresDescription(req.Type) && semantic.Semantic.Description == "" {
		semantic.Semantic.Description = document.Summary(semantic.RawBody)
		log.Debug("derived skill description from body")
	}

	primary := document.PrimaryFile(req.Type, req.DestPath)
	existingText, exists, err := c.writer.Read(primary)
	if err != nil {
		return fail(err)
	}

	var existing *document.Document
	if exists && req.Dest.IsHub() {
		existing, err = dst.Parse(req.Type, req.DestPath)
		if err != nil {
			return fail(errors.Wrap(err, "failed to read existing hub document"))
		}
	}

	out, err := dst.FromIR(semantic, agents.FromIROptions{
		RemoveUnsupported: opts.RemoveUnsupported,
		ExistingTarget:    existing,
	})
	if err != nil {
		return fail(err)
	}
	out.Path = req.DestPath
	if err := dst.Validate(out); err != nil {
		return fail(err)
	}
	text, err := dst.Stringify(out)
	if err != nil {
		return fail(err)
	}

	switch {
	case !exists:
		op.Action = ActionCreate
	case existingText == text:
		op.Action = ActionUnchanged
	default:
		op.Action = ActionUpdate
	}

	if opts.DryRun {
		op.Diff = udiff.Unified(primary, primary, existingText, text)
		log.WithField("action", op.Action).Debug("dry run")
		return op, nil
	}

	if req.Type == document.Skill {
		err = c.writer.WriteSkill(ctx, req.DestPath, text, out.SupportFiles)
	} else if op.Action != ActionUnchanged {
		err = c.writer.WriteCommand(ctx, req.DestPath, text)
	}
	if err != nil {
		op.Action = ActionFailed
		return fail(err)
	}

	telemetry.AddEvent(ctx, "document.written", attribute.String("chimera.action", string(op.Action)))
	log.WithField("action", op.Action).Debug("converted document")
	return op, nil
}

// carryUnsupported keeps semantic fields the destination cannot express as
// opaque fields under the source spelling, so RemoveUnsupported decides
// whether they survive
func carryUnsupported(semantic *ir.SemanticIR, src, dst agents.Adapter) {
	t := semantic.ContentType
	for _, field := range ir.Fields {
		if !semantic.Semantic.Has(field) {
			continue
		}
		if _, _, ok := dst.FieldKey(t, field); ok {
			continue
		}
		key, invert, ok := src.FieldKey(t, field)
		if !ok || semantic.Extras.Has(key) {
			continue
		}
		if v, ok := semantic.Semantic.Value(field, invert); ok {
			semantic.Extras.Set(key, v)
		}
	}
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
