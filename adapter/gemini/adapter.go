// Package gemini reduces google.golang.org/genai streaming responses to
// the neutral events the translation core consumes.
//
// Gemini delivers text and thought-summary parts incrementally and
// function calls in two modes. A complete call carries its id and full
// arguments in one part and is closed immediately. Under progressive
// streaming, partial calls arrive without an id; the adapter allocates
// one, streams the argument fragments, and when the framework later
// re-delivers the confirmed call under its own id, folds that id onto
// the streamed call instead of opening a duplicate. Which delivery is
// "confirmed" is not spelled out by the framework; the adapter treats a
// call with an id whose name matches the open streamed call as the
// confirmation.
package gemini

import (
	"context"
	"encoding/json"
	"io"
	"iter"

	"google.golang.org/genai"

	"github.com/spetersoncode/agui/events"
	"github.com/spetersoncode/agui/translate"
)

// Adapter converts GenerateContentResponse chunks into Native events.
// Create one per streamed response, or call Reset between responses.
// Not safe for concurrent use.
type Adapter struct {
	streamedID   string
	streamedName string
}

// New creates an Adapter with no tracked call.
func New() *Adapter {
	return &Adapter{}
}

// Reset clears the streamed-call state for the next response.
func (a *Adapter) Reset() {
	a.streamedID = ""
	a.streamedName = ""
}

// Response translates one streamed response chunk into zero or more
// Native events.
func (a *Adapter) Response(resp *genai.GenerateContentResponse) []translate.Native {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	candidate := resp.Candidates[0]
	var out []translate.Native

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			out = append(out, a.part(part)...)
		}
	}

	if candidate.FinishReason != "" {
		out = append(out, a.finish()...)
		out = append(out, translate.Native{Kind: translate.KindResponseDone})
	}
	return out
}

func (a *Adapter) part(part *genai.Part) []translate.Native {
	if part == nil {
		return nil
	}
	switch {
	case part.FunctionCall != nil:
		return a.functionCall(part.FunctionCall)

	case part.FunctionResponse != nil:
		return a.functionResponse(part.FunctionResponse)

	case part.Text != "":
		kind := translate.KindTextDelta
		if part.Thought {
			kind = translate.KindThinkingDelta
		}
		return []translate.Native{{Kind: kind, Text: part.Text}}

	default:
		return nil
	}
}

func (a *Adapter) functionCall(fc *genai.FunctionCall) []translate.Native {
	args := encodeArgs(fc.Args)

	if fc.ID == "" {
		// Partial delivery: no id yet. The first partial opens a
		// streamed call under a generated id, later partials append
		// argument fragments.
		if a.streamedID != "" && a.streamedName == fc.Name {
			if args == "" {
				return nil
			}
			return []translate.Native{{
				Kind:       translate.KindToolCallDelta,
				ToolCallID: a.streamedID,
				ArgsDelta:  args,
			}}
		}
		out := a.finish()
		a.streamedID = events.GenerateToolCallID()
		a.streamedName = fc.Name
		out = append(out, translate.Native{
			Kind:       translate.KindToolCallBegin,
			ToolCallID: a.streamedID,
			ToolName:   fc.Name,
			Streaming:  true,
		})
		if args != "" {
			out = append(out, translate.Native{
				Kind:       translate.KindToolCallDelta,
				ToolCallID: a.streamedID,
				ArgsDelta:  args,
			})
		}
		return out
	}

	if a.streamedID != "" && a.streamedName == fc.Name {
		// Confirmed re-delivery of the streamed call under its real id.
		out := []translate.Native{
			{
				Kind:        translate.KindToolCallRemap,
				ToolCallID:  a.streamedID,
				ConfirmedID: fc.ID,
			},
			{
				Kind:       translate.KindToolCallDone,
				ToolCallID: fc.ID,
			},
		}
		a.Reset()
		return out
	}

	// Complete call: id and arguments in one part.
	return []translate.Native{
		{
			Kind:       translate.KindToolCallBegin,
			ToolCallID: fc.ID,
			ToolName:   fc.Name,
			Args:       args,
		},
		{
			Kind:       translate.KindToolCallDone,
			ToolCallID: fc.ID,
		},
	}
}

func (a *Adapter) functionResponse(fr *genai.FunctionResponse) []translate.Native {
	content := ""
	if len(fr.Response) > 0 {
		if data, err := json.Marshal(fr.Response); err == nil {
			content = string(data)
		}
	}
	return []translate.Native{{
		Kind:       translate.KindToolResult,
		ToolCallID: fr.ID,
		Result:     content,
	}}
}

// finish closes the open streamed call, if any.
func (a *Adapter) finish() []translate.Native {
	if a.streamedID == "" {
		return nil
	}
	out := []translate.Native{{
		Kind:       translate.KindToolCallDone,
		ToolCallID: a.streamedID,
	}}
	a.Reset()
	return out
}

func encodeArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	data, err := json.Marshal(args)
	if err != nil {
		return ""
	}
	return string(data)
}

type source struct {
	next    func() (*genai.GenerateContentResponse, error, bool)
	stop    func()
	adapter *Adapter
	pending []translate.Native
	closed  bool
}

// NewSource wraps the response sequence returned by
// Models.GenerateContentStream as a translate.Source.
func NewSource(seq iter.Seq2[*genai.GenerateContentResponse, error]) translate.Source {
	next, stop := iter.Pull2(seq)
	return &source{next: next, stop: stop, adapter: New()}
}

func (s *source) Next(ctx context.Context) (translate.Native, error) {
	for {
		if len(s.pending) > 0 {
			n := s.pending[0]
			s.pending = s.pending[1:]
			return n, nil
		}
		if err := ctx.Err(); err != nil {
			s.close()
			return translate.Native{}, err
		}
		if s.closed {
			return translate.Native{}, io.EOF
		}
		resp, err, ok := s.next()
		if !ok {
			s.close()
			return translate.Native{}, io.EOF
		}
		if err != nil {
			s.close()
			return translate.Native{}, err
		}
		s.pending = s.adapter.Response(resp)
	}
}

func (s *source) close() {
	if !s.closed {
		s.closed = true
		s.stop()
	}
}
