// Package openaichat reduces OpenAI chat-completion stream chunks to
// the neutral events the translation core consumes.
//
// Tool calls arrive index-correlated: the id and name appear on the
// first chunk for an index, later chunks for the same index carry only
// argument fragments. Refusal deltas feed the refusal channel. A finish
// reason closes any open tool calls and the response.
package openaichat

import (
	"context"
	"io"

	"github.com/openai/openai-go"

	"github.com/spetersoncode/agui/events"
	"github.com/spetersoncode/agui/translate"
)

// Adapter converts ChatCompletionChunk values into Native events. It
// keeps the per-response index-to-id table; create one per streamed
// response, or call Reset between responses. Not safe for concurrent
// use.
type Adapter struct {
	callIDs map[int64]string
	order   []int64
}

// New creates an Adapter with no tracked tool calls.
func New() *Adapter {
	return &Adapter{callIDs: make(map[int64]string)}
}

// Reset clears the index-to-id table for the next response.
func (a *Adapter) Reset() {
	clear(a.callIDs)
	a.order = nil
}

// Chunk translates one stream chunk into zero or more Native events.
func (a *Adapter) Chunk(chunk openai.ChatCompletionChunk) []translate.Native {
	if len(chunk.Choices) == 0 {
		return nil
	}
	choice := chunk.Choices[0]
	var out []translate.Native

	if choice.Delta.Content != "" {
		out = append(out, translate.Native{
			Kind: translate.KindTextDelta,
			Text: choice.Delta.Content,
		})
	}
	if choice.Delta.Refusal != "" {
		out = append(out, translate.Native{
			Kind: translate.KindRefusalDelta,
			Text: choice.Delta.Refusal,
		})
	}

	for _, tc := range choice.Delta.ToolCalls {
		out = append(out, a.toolCallDelta(tc)...)
	}

	if choice.FinishReason != "" {
		for _, index := range a.order {
			out = append(out, translate.Native{
				Kind:       translate.KindToolCallDone,
				ToolCallID: a.callIDs[index],
			})
		}
		a.Reset()
		out = append(out, translate.Native{Kind: translate.KindResponseDone})
	}
	return out
}

func (a *Adapter) toolCallDelta(tc openai.ChatCompletionChunkChoiceDeltaToolCall) []translate.Native {
	id, tracked := a.callIDs[tc.Index]
	if !tracked {
		id = tc.ID
		if id == "" {
			// Defensive: some gateways drop the id on the first chunk.
			id = events.GenerateToolCallID()
		}
		a.callIDs[tc.Index] = id
		a.order = append(a.order, tc.Index)
		out := []translate.Native{{
			Kind:       translate.KindToolCallBegin,
			ToolCallID: id,
			ToolName:   tc.Function.Name,
			Streaming:  true,
		}}
		if tc.Function.Arguments != "" {
			out = append(out, translate.Native{
				Kind:       translate.KindToolCallDelta,
				ToolCallID: id,
				ArgsDelta:  tc.Function.Arguments,
			})
		}
		return out
	}
	if tc.Function.Arguments == "" {
		return nil
	}
	return []translate.Native{{
		Kind:       translate.KindToolCallDelta,
		ToolCallID: id,
		ArgsDelta:  tc.Function.Arguments,
	}}
}

// Stream is the subset of the SDK's chunk stream the source needs.
type Stream interface {
	Next() bool
	Current() openai.ChatCompletionChunk
	Err() error
}

type source struct {
	stream  Stream
	adapter *Adapter
	pending []translate.Native
}

// NewSource wraps a chunk stream as a translate.Source.
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
		s.pending = s.adapter.Chunk(s.stream.Current())
	}
}
