package graph

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/dmitrijs2005/bookshelf/internal/server/metrics"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
)

type Kind int

const (
	KindQuery Kind = iota
	KindMutation
	// KindField resolves a field of an object; the parent is passed along.
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindMutation:
		return "mutation"
	case KindField:
		return "field"
	}
	return "unknown"
}

type ResolveFunc func(ctx context.Context, parent any, args Args) (any, error)

// Operation declares how one named operation is checked and resolved. An
// empty Role means anyone, including anonymous callers, may run it.
type Operation struct {
	Kind     Kind
	Role     models.Role
	Required []string
	Resolve  ResolveFunc
}

type Dispatcher struct {
	ops     map[string]Operation
	metrics *metrics.Metrics
	logger  logging.Logger
}

// NewDispatcher builds the operation table over r. m may be nil.
func NewDispatcher(r *Resolver, m *metrics.Metrics, logger logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Dispatcher{ops: operations(r), metrics: m, logger: logger}
}

func (d *Dispatcher) Lookup(name string) (Operation, bool) {
	op, ok := d.ops[name]
	return op, ok
}

// Dispatch runs the named operation. Every returned error is an
// *OperationError; store failures are logged and reported generically.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, parent any, args Args) (any, error) {
	start := time.Now()

	result, err := d.dispatch(ctx, name, parent, args)
	if err != nil {
		opErr, known := classify(err)
		if known {
			d.logger.Debug(ctx, "operation rejected", "operation", name, "code", opErr.Code, "error", err)
		} else {
			d.logger.Error(ctx, "operation failed", "operation", name, "error", err)
		}
		d.metrics.Observe(name, opErr, time.Since(start))
		return nil, opErr
	}

	d.metrics.Observe(name, nil, time.Since(start))
	return result, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, name string, parent any, args Args) (any, error) {
	op, ok := d.ops[name]
	if !ok {
		return nil, validationf("unknown operation %q", name)
	}

	for _, arg := range op.Required {
		if !args.Has(arg) {
			return nil, validationf("missing required argument %q", arg)
		}
	}

	if op.Role != "" {
		if err := Require(ctx, op.Role); err != nil {
			return nil, err
		}
	}

	return op.Resolve(ctx, parent, args)
}
