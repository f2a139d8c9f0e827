package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Source is an ordered stream of framework-native events. Next blocks
// until the next event is available and returns io.EOF when the stream
// terminates normally. Adapters wrap their SDK's stream type in a
// Source so a run can be driven end to end.
type Source interface {
	Next(ctx context.Context) (Native, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) (Native, error)

// Next calls f.
func (f SourceFunc) Next(ctx context.Context) (Native, error) {
	return f(ctx)
}

// Run drives one complete run: it emits RUN_STARTED, pulls native
// events from src until the stream terminates, and appends each
// translated event to q in order.
//
// The emitted stream is always well formed. On clean termination
// (io.EOF) any open aggregator is flushed and RUN_FINISHED closes the
// run; on a source error or context cancellation the flush is followed
// by RUN_ERROR instead. The source error is also returned to the caller
// for logging, but it never reaches the wire as anything other than the
// terminal RUN_ERROR event.
func Run(ctx context.Context, tr *Translator, src Source, q *Queue) error {
	if err := q.Put(tr.RunStarted()); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return finishError(tr, q, err)
		}

		n, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return finishOK(tr, q)
		}
		if err != nil {
			return finishError(tr, q, err)
		}

		for _, ev := range tr.Translate(n) {
			if err := q.Put(ev); err != nil {
				// Consumer is gone; nothing more can reach the wire.
				return err
			}
		}
	}
}

func finishOK(tr *Translator, q *Queue) error {
	for _, ev := range tr.ForceCloseAll() {
		if err := q.Put(ev); err != nil {
			return err
		}
	}
	return q.Put(tr.RunFinished(nil))
}

func finishError(tr *Translator, q *Queue, cause error) error {
	for _, ev := range tr.ForceCloseAll() {
		if err := q.Put(ev); err != nil {
			return err
		}
	}
	if err := q.Put(tr.RunError(cause)); err != nil {
		return err
	}
	return fmt.Errorf("run %s: %w", tr.RunID(), cause)
}
