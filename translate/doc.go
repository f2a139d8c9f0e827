// Package translate converts framework-native streaming events into
// well-formed AG-UI protocol event sequences.
//
// The package is the generic core shared by every provider adapter. A
// [Translator] owns the per-run aggregator state: one text stream, one
// thinking stream, one refusal stream, and a tool-call correlator with
// native-to-external id remapping. Adapters reduce their SDK's stream
// types to neutral [Native] events; the Translator turns each Native
// event into zero or more protocol events with the pairing guarantees
// clients rely on (every Start gets a matching End, ids stay stable
// across a stream, empty deltas are never emitted).
//
// A full run is driven with [Run], which pulls Native events from a
// [Source], forwards the translated events to a [Queue] in order, and
// always closes the stream with exactly one lifecycle event, flushing
// any open aggregator first:
//
//	tr := translate.NewTranslator(threadID, runID)
//	q := translate.NewQueue(0)
//	go func() {
//		defer q.Close()
//		translate.Run(ctx, tr, source, q)
//	}()
//	for {
//		ev, err := q.Get(ctx)
//		if err != nil {
//			break
//		}
//		writeSSE(w, ev)
//	}
//
// A Translator is not safe for concurrent use. Each run should have its
// own, or a long-lived Translator can be reused across sequential runs
// with Reset between them. The Queue is the one concurrency-safe piece:
// it accepts appends from the run loop and any number of heartbeat
// goroutines.
package translate
