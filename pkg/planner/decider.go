package planner

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/qe-first/qedriver/pkg/core"
	"github.com/qe-first/qedriver/pkg/encode"
	"github.com/qe-first/qedriver/pkg/extract"
)

// Decider is the external decision function. It receives an opaque
// payload (full or minimal JSON) and a goal description, and returns a
// stable index. Returning ErrNoSelection means it declined to choose.
type Decider interface {
	Decide(ctx context.Context, payload []byte, goal string) (int, error)
}

// Adapter is the pass-through boundary around a Decider. It performs no
// filtering or transformation of the payload; it only validates the
// returned index and maps timeouts. Silently picking a wrong control on
// a live device is unsafe, so an invalid index is surfaced, never
// defaulted.
type Adapter struct {
	decider Decider
	timeout time.Duration
}

// NewAdapter wraps a decider. A zero timeout means no deadline.
func NewAdapter(d Decider, timeout time.Duration) *Adapter {
	return &Adapter{decider: d, timeout: timeout}
}

// Plan sends the payload to the decision function and captures the
// chosen element's identity as a Selection.
func (a *Adapter) Plan(ctx context.Context, elements []extract.Element, payload []byte, goal string) (Selection, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	idx, err := a.decider.Decide(ctx, payload, goal)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Selection{}, core.ErrDecisionTimeout.WithCause(err)
		}
		return Selection{}, err
	}

	if idx < 0 || idx >= len(elements) {
		return Selection{}, core.ErrNoSelection.WithDetails(map[string]interface{}{
			"index": idx,
			"total": len(elements),
		})
	}

	return NewSelection(elements[idx]), nil
}

// StubDecider is a deterministic offline decision function: first
// clickable entry with a label, then first clickable entry with any
// identity, otherwise no selection. It understands the minimal payload
// only.
type StubDecider struct{}

// Decide implements Decider.
func (StubDecider) Decide(_ context.Context, payload []byte, _ string) (int, error) {
	var p encode.Payload
	if err := json.Unmarshal(payload, &p); err != nil {
		return 0, core.ErrNoSelection.WithMessage("stub decider requires the minimal payload").WithCause(err)
	}

	for _, e := range p.E {
		if e.C == 1 && e.L != "" {
			return e.I, nil
		}
	}
	for _, e := range p.E {
		if e.C == 1 {
			return e.I, nil
		}
	}
	return 0, core.ErrNoSelection
}
