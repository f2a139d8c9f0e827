// Package anthropic reduces Anthropic message-stream events to the
// neutral events the translation core consumes.
//
// Content arrives as indexed blocks: text blocks feed the text channel,
// thinking blocks the thinking channel, and tool_use blocks open a
// streaming tool call whose arguments arrive as input_json_delta
// fragments. A content_block_stop closes whichever channel its index
// opened; message_stop closes the response.
package anthropic

import (
	"context"
	"io"

	sdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/spetersoncode/agui/translate"
)

type blockKind int

const (
	blockText blockKind = iota
	blockThinking
	blockTool
)

type block struct {
	kind   blockKind
	callID string
}

// Adapter converts MessageStreamEventUnion values into Native events.
// It keeps the per-response block index table; create one per streamed
// response, or call Reset between responses. Not safe for concurrent
// use.
type Adapter struct {
	blocks map[int64]block
}

// New creates an Adapter with no tracked blocks.
func New() *Adapter {
	return &Adapter{blocks: make(map[int64]block)}
}

// Reset clears the block table for the next response.
func (a *Adapter) Reset() {
	clear(a.blocks)
}

// Event translates one stream event into zero or more Native events.
func (a *Adapter) Event(event sdk.MessageStreamEventUnion) []translate.Native {
	switch ev := event.AsAny().(type) {
	case sdk.MessageStartEvent:
		a.Reset()
		return nil

	case sdk.ContentBlockStartEvent:
		return a.blockStart(ev)

	case sdk.ContentBlockDeltaEvent:
		return a.blockDelta(ev)

	case sdk.ContentBlockStopEvent:
		return a.blockStop(ev)

	case sdk.MessageStopEvent:
		return []translate.Native{{Kind: translate.KindResponseDone}}

	default:
		// message_delta and ping carry no translatable content.
		return nil
	}
}

func (a *Adapter) blockStart(ev sdk.ContentBlockStartEvent) []translate.Native {
	switch start := ev.ContentBlock.AsAny().(type) {
	case sdk.ToolUseBlock:
		a.blocks[ev.Index] = block{kind: blockTool, callID: start.ID}
		return []translate.Native{{
			Kind:       translate.KindToolCallBegin,
			ToolCallID: start.ID,
			ToolName:   start.Name,
			Streaming:  true,
		}}
	case sdk.ThinkingBlock:
		a.blocks[ev.Index] = block{kind: blockThinking}
		return nil
	default:
		a.blocks[ev.Index] = block{kind: blockText}
		return nil
	}
}

func (a *Adapter) blockDelta(ev sdk.ContentBlockDeltaEvent) []translate.Native {
	switch delta := ev.Delta.AsAny().(type) {
	case sdk.TextDelta:
		if delta.Text == "" {
			return nil
		}
		return []translate.Native{{Kind: translate.KindTextDelta, Text: delta.Text}}

	case sdk.ThinkingDelta:
		if delta.Thinking == "" {
			return nil
		}
		return []translate.Native{{Kind: translate.KindThinkingDelta, Text: delta.Thinking}}

	case sdk.InputJSONDelta:
		if delta.PartialJSON == "" {
			return nil
		}
		b, ok := a.blocks[ev.Index]
		if !ok || b.kind != blockTool {
			return nil
		}
		return []translate.Native{{
			Kind:       translate.KindToolCallDelta,
			ToolCallID: b.callID,
			ArgsDelta:  delta.PartialJSON,
		}}

	default:
		// signature_delta is bookkeeping, not content.
		return nil
	}
}

func (a *Adapter) blockStop(ev sdk.ContentBlockStopEvent) []translate.Native {
	b, ok := a.blocks[ev.Index]
	if !ok {
		return nil
	}
	delete(a.blocks, ev.Index)
	switch b.kind {
	case blockTool:
		return []translate.Native{{Kind: translate.KindToolCallDone, ToolCallID: b.callID}}
	case blockThinking:
		return []translate.Native{{Kind: translate.KindThinkingDone}}
	default:
		return []translate.Native{{Kind: translate.KindTextDone}}
	}
}

// Stream is the subset of the SDK's event stream the source needs.
type Stream interface {
	Next() bool
	Current() sdk.MessageStreamEventUnion
	Err() error
}

type source struct {
	stream  Stream
	adapter *Adapter
	pending []translate.Native
}

// NewSource wraps a message event stream as a translate.Source.
func NewSource(stream Stream) translate.Source {
	return &source{stream: stream, adapter: New()}
}

func (s *source) Next(ctx context.Context) (translate.Native, error) {
	for {
		if len(s.pending) > 0 {
			n := s.pending[0]
			s.pending = s.pending[1:]
			return n, nil
		}
		if err := ctx.Err(); err != nil {
			return translate.Native{}, err
		}
		if !s.stream.Next() {
			if err := s.stream.Err(); err != nil {
				return translate.Native{}, err
			}
			return translate.Native{}, io.EOF
		}
		s.pending = s.adapter.Event(s.stream.Current())
	}
}
