package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/ncerr/core"
)

// Kind selects the translation a job performs.
type Kind int

const (
	// KindEdit translates a generic validation failure of an edit.
	KindEdit Kind = iota
	// KindLockDenied translates a refused lock request.
	KindLockDenied
	// KindInUse translates an operation refused on a locked resource.
	KindInUse
)

func (k Kind) String() string {
	switch k {
	case KindEdit:
		return "edit"
	case KindLockDenied:
		return "lock-denied"
	case KindInUse:
		return "in-use"
	}
	return "unknown"
}

// Job is one validation failure to translate.
type Job struct {
	Kind Kind
	// Src is the session holding the validation engine's errors (KindEdit only).
	Src core.SessionID
	// Dst is the session receiving the protocol error.
	Dst     core.SessionID
	Records []core.ValidationErrorRecord
}

// Translator is the subset of translate.Translator the pipeline drives.
type Translator interface {
	Edit(ctx context.Context, src, dst core.SessionID, records []core.ValidationErrorRecord) error
	LockDenied(ctx context.Context, dst core.SessionID, record core.ValidationErrorRecord) error
	InUse(ctx context.Context, dst core.SessionID, record core.ValidationErrorRecord) error
}

// Pipeline translates batches of jobs on a worker pool.
type Pipeline struct {
	translator Translator
	pool       *ants.Pool
	progress   *ProgressTracker
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithProgress reports every finished job to tracker.
func WithProgress(tracker *ProgressTracker) Option {
	return func(p *Pipeline) error {
		p.progress = tracker
		return nil
	}
}

// NewPipeline creates a new batch pipeline.
func NewPipeline(translator Translator, opts ...Option) (*Pipeline, error) {
	if translator == nil {
		return nil, ErrTranslatorRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		translator: translator,
		pool:       pool,
		logger:     slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run translates jobs and waits for all of them. Jobs sharing a destination
// session run in submission order on one worker. The returned error joins the
// errors of every failed job.
func (p *Pipeline) Run(ctx context.Context, jobs []Job) error {
	groups, order := groupByDestination(jobs)

	if p.progress != nil {
		p.progress.Start()
		defer p.progress.Finish()
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	fail := func(index int, err error) {
		mu.Lock()
		errs = append(errs, fmt.Errorf("job %d (%s, session %d): %w", index, jobs[index].Kind, jobs[index].Dst, err))
		mu.Unlock()
	}

	for _, dst := range order {
		indexes := groups[dst]
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			for _, i := range indexes {
				err := p.runJob(ctx, jobs[i])
				if err != nil {
					fail(i, err)
				}
				if p.progress != nil {
					p.progress.Done(err)
				}
			}
		})
		if err != nil {
			wg.Done()
			for _, i := range indexes {
				fail(i, err)
			}
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		p.logger.Error("batch finished with failures", "jobs", len(jobs), "failed", len(errs))
	} else {
		p.logger.Debug("batch finished", "jobs", len(jobs), "sessions", len(order))
	}
	return errors.Join(errs...)
}

func (p *Pipeline) runJob(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("%w: %w", ErrJobPanicked, rerr)
				return
			}
			err = fmt.Errorf("%w: %v", ErrJobPanicked, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	switch job.Kind {
	case KindEdit:
		return p.translator.Edit(ctx, job.Src, job.Dst, job.Records)
	case KindLockDenied, KindInUse:
		if len(job.Records) == 0 {
			return ErrEmptyJob
		}
		if job.Kind == KindLockDenied {
			return p.translator.LockDenied(ctx, job.Dst, job.Records[0])
		}
		return p.translator.InUse(ctx, job.Dst, job.Records[0])
	}
	return fmt.Errorf("%w: %d", ErrUnknownKind, job.Kind)
}

// groupByDestination returns job indexes per destination and the destinations
// in order of first appearance.
func groupByDestination(jobs []Job) (map[core.SessionID][]int, []core.SessionID) {
	groups := make(map[core.SessionID][]int)
	var order []core.SessionID
	for i, job := range jobs {
		if _, ok := groups[job.Dst]; !ok {
			order = append(order, job.Dst)
		}
		groups[job.Dst] = append(groups[job.Dst], i)
	}
	return groups, order
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
