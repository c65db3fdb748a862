package evaluate

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-recommender/internal/llm"
	"github.com/jonathan/resume-recommender/internal/recovery"
	"github.com/jonathan/resume-recommender/internal/schema"
	"github.com/jonathan/resume-recommender/internal/types"
	"github.com/jonathan/resume-recommender/internal/validation"
)

// DefaultParallelism bounds concurrent model calls during batch evaluation.
const DefaultParallelism = 4

// Document is one candidate resume to evaluate: its extracted text plus a
// source name used to attribute the result.
type Document struct {
	Source string
	Text   string
}

// Evaluator runs resume evaluations against one job and one compiled schema.
// It holds no mutable state after construction, so a single Evaluator is safe
// for concurrent use.
type Evaluator struct {
	client  llm.Client
	job     Job
	fields  []types.FieldDescriptor
	schema  *schema.RecordSchema
	recOpts recovery.Options
}

// New compiles the record schema for the given descriptors and returns an
// Evaluator. Compilation errors are configuration errors: they surface here,
// before any document is processed.
func New(client llm.Client, job Job, fields []types.FieldDescriptor) (*Evaluator, error) {
	compiled, err := schema.Compile(fields)
	if err != nil {
		return nil, err
	}
	return &Evaluator{
		client:  client,
		job:     job,
		fields:  fields,
		schema:  compiled,
		recOpts: recoveryOptions(compiled),
	}, nil
}

// Schema exposes the compiled record schema.
func (e *Evaluator) Schema() *schema.RecordSchema {
	return e.schema
}

// One evaluates a single document. Failures are carried inside the returned
// envelope, never as a Go error: a bad document must not look different from a
// bad batch to the caller's control flow.
func (e *Evaluator) One(ctx context.Context, doc Document) *types.Evaluation {
	ev := &types.Evaluation{
		ID:     uuid.New(),
		Source: doc.Source,
	}

	prompt := BuildPrompt(e.job, e.fields, doc.Text)
	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		ev.Err = &APICallError{Message: "failed to generate evaluation", Cause: err}
		return ev
	}
	ev.RawResponse = raw

	mapping, err := recovery.Recover(raw, e.recOpts)
	if err != nil {
		var recErr *recovery.Error
		if errors.As(err, &recErr) {
			ev.CleanedText = recErr.Cleaned
		}
		ev.Err = err
		return ev
	}

	record, err := validation.Validate(mapping, e.schema)
	if err != nil {
		ev.Err = err
		return ev
	}

	ev.Record = record
	return ev
}

// Batch evaluates documents concurrently, at most parallelism at a time.
// Results are returned in input order and every document gets an envelope: a
// recovery or validation failure on one document never aborts the rest.
func (e *Evaluator) Batch(ctx context.Context, docs []Document, parallelism int) []*types.Evaluation {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	results := make([]*types.Evaluation, len(docs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, doc := range docs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = &types.Evaluation{ID: uuid.New(), Source: doc.Source, Err: err}
				return nil
			}
			results[i] = e.One(ctx, doc)
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()
	return results
}

// recoveryOptions derives the pipeline's aggressiveness bound from the
// schema's structural expectations. Aggressive array rewriting is only safe
// when the schema contains no nested record lists.
func recoveryOptions(s *schema.RecordSchema) recovery.Options {
	for _, a := range s.Attributes() {
		if a.Type == schema.TypeConsiderationList {
			return recovery.Options{}
		}
	}
	return recovery.Options{AggressiveArrayQuoting: true}
}
