// Package engine provides the thin document-level concurrency helpers
// named in spec.md §5: validating or mapping a batch of documents in
// parallel is a convenience over the single-document APIs in pkg/validate
// and pkg/mapping, not a pipeline orchestrator. The only shared-mutable
// resource in the core is pkg/schema's Registry, which already guards
// itself with a RWMutex; everything here is embarrassingly parallel
// beyond that.
package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/errfld/rsedi-sub001/pkg/ir"
	"github.com/errfld/rsedi-sub001/pkg/mapping"
	"github.com/errfld/rsedi-sub001/pkg/schema"
	"github.com/errfld/rsedi-sub001/pkg/validate"
)

// ValidateAll runs validate.Validate over every document in docs
// concurrently against the same resolved schema, returning one *Result
// per input document in input order. An error is only returned if ctx is
// canceled; individual documents' diagnostics always land in their
// Result slot regardless of other documents' outcomes, since Validate
// itself never returns an error.
func ValidateAll(ctx context.Context, docs []*ir.Document, s *schema.Schema, cfg validate.Config) ([]*validate.Result, error) {
	results := make([]*validate.Result, len(docs))

	g, ctx := errgroup.WithContext(ctx)

	for i, doc := range docs {
		i, doc := i, doc

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = validate.Validate(doc, s, cfg)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// MapAll runs the same mapping Program over every source document in
// docs concurrently, returning one target *ir.Document per input in
// input order. Unlike ValidateAll, MapAll does return per-document
// mapping errors (abort-on-first-failure is scoped to a single
// document's rule evaluation, per spec.md §9, not the whole batch), so
// the returned slice may contain fewer documents than docs if some
// failed; callers that need to know which input produced which error
// should call mapping.Runtime.Run directly per document instead.
func MapAll(ctx context.Context, rt *mapping.Runtime, program *mapping.Program, docs []*ir.Document) ([]*ir.Document, []error) {
	results := make([]*ir.Document, len(docs))
	errs := make([]error, len(docs))

	g, ctx := errgroup.WithContext(ctx)

	for i, doc := range docs {
		i, doc := i, doc

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			out, err := rt.Run(program, doc)
			results[i] = out
			errs[i] = err

			return nil
		})
	}

	// g.Wait's error is only non-nil on context cancellation (Run's own
	// errors are captured per-document above, not propagated through the
	// group), so it is deliberately ignored here beyond draining the
	// group.
	_ = g.Wait()

	out := make([]*ir.Document, 0, len(docs))
	for _, d := range results {
		if d != nil {
			out = append(out, d)
		}
	}

	return out, errs
}
