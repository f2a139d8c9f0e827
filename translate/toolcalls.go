package translate

import (
	"encoding/json"
	"fmt"

	"github.com/spetersoncode/agui/events"
)

// ToolCalls correlates framework-native tool call ids with the single
// externally-visible tool_call_id the protocol requires. A framework may
// refer to one logical call under more than one native id (a streamed id
// first, a confirmed id later); Remap folds the later id onto the
// existing external id so downstream consumers never see the call split
// in two.
//
// Multiple calls may be open concurrently, keyed by native id. Closing a
// call keeps its id mapping alive so a later result still resolves to
// the same external id.
type ToolCalls struct {
	active   map[string]*toolCall
	resolved map[string]string
	order    []*toolCall
}

type toolCall struct {
	externalID string
	name       string
	streaming  bool
	open       bool
}

// Call describes a tool call announcement.
type Call struct {
	// NativeID is the framework's id for the call. Required.
	NativeID string
	// Name is the tool name.
	Name string
	// Args carries the complete serialized arguments of a non-streaming
	// call. Ignored when Streaming is set and empty.
	Args string
	// Streaming reports that argument fragments follow via AppendArgs.
	// This flag, not the absence of Args, decides whether empty
	// arguments mean "not yet delivered": treating args-absence as
	// authoritative silently drops the first fragment of a streamed
	// call.
	Streaming bool
	// ParentMessageID optionally links the call to the message that
	// produced it.
	ParentMessageID string
}

// NewToolCalls creates an empty correlator.
func NewToolCalls() *ToolCalls {
	return &ToolCalls{
		active:   make(map[string]*toolCall),
		resolved: make(map[string]string),
	}
}

// OpenCount returns the number of calls that have started but not ended.
func (t *ToolCalls) OpenCount() int {
	n := 0
	for _, c := range t.order {
		if c.open {
			n++
		}
	}
	return n
}

// StartCall registers a call and emits TOOL_CALL_START, allocating the
// external id on first sight of the native id. A non-streaming call with
// known arguments also emits one TOOL_CALL_ARGS carrying them in full.
// Starting an id that is already known is a no-op: a confirmed delivery
// of an already-streamed call must not open a duplicate.
func (t *ToolCalls) StartCall(call Call) []events.Event {
	if call.NativeID == "" {
		call.NativeID = events.GenerateToolCallID()
	}
	if _, seen := t.resolved[call.NativeID]; seen {
		return nil
	}

	c := &toolCall{
		externalID: events.GenerateToolCallID(),
		name:       call.Name,
		streaming:  call.Streaming,
		open:       true,
	}
	t.active[call.NativeID] = c
	t.resolved[call.NativeID] = c.externalID
	t.order = append(t.order, c)

	var opts []events.ToolCallStartOption
	if call.ParentMessageID != "" {
		opts = append(opts, events.WithParentMessageID(call.ParentMessageID))
	}
	out := []events.Event{events.NewToolCallStartEvent(c.externalID, call.Name, opts...)}
	if call.Args != "" {
		out = append(out, events.NewToolCallArgsEvent(c.externalID, call.Args))
	}
	return out
}

// AppendArgs emits TOOL_CALL_ARGS with one argument fragment. Non-string
// fragments are JSON-encoded. Empty fragments and unknown ids yield
// nothing, as do fragments for a call that was announced as
// non-streaming: its arguments were already delivered in full on
// StartCall, and a late fragment would duplicate them.
func (t *ToolCalls) AppendArgs(nativeID string, fragment any) []events.Event {
	c, ok := t.active[nativeID]
	if !ok || !c.streaming {
		return nil
	}
	delta, err := encodeFragment(fragment)
	if err != nil || delta == "" {
		return nil
	}
	return []events.Event{events.NewToolCallArgsEvent(c.externalID, delta)}
}

// EndCall emits TOOL_CALL_END and releases the call's active slot. The
// external id stays resolvable for a later Result. Unknown ids are a
// no-op: frameworks may replay or duplicate end signals.
func (t *ToolCalls) EndCall(nativeID string) []events.Event {
	c, ok := t.active[nativeID]
	if !ok {
		return nil
	}
	for id, entry := range t.active {
		if entry == c {
			delete(t.active, id)
		}
	}
	c.open = false
	return []events.Event{events.NewToolCallEndEvent(c.externalID)}
}

// Result emits TOOL_CALL_RESULT under a fresh message id. The tool call
// id is resolved through the remap table so the result always carries
// the id the client saw on TOOL_CALL_START; a native id the correlator
// never saw passes through unchanged.
func (t *ToolCalls) Result(nativeID, content string) []events.Event {
	externalID, ok := t.resolved[nativeID]
	if !ok {
		externalID = nativeID
	}
	return []events.Event{
		events.NewToolCallResultEvent(events.GenerateMessageID(), externalID, content),
	}
}

// Remap folds confirmedID onto the external id already allocated for
// nativeID. After the remap, args, end, and result signals arriving
// under either native id resolve to the same external id. Remapping an
// unknown nativeID, or a confirmedID that is already mapped, is a no-op.
func (t *ToolCalls) Remap(nativeID, confirmedID string) {
	if confirmedID == "" || confirmedID == nativeID {
		return
	}
	if _, taken := t.resolved[confirmedID]; taken {
		return
	}
	externalID, ok := t.resolved[nativeID]
	if !ok {
		return
	}
	t.resolved[confirmedID] = externalID
	if c, open := t.active[nativeID]; open {
		t.active[confirmedID] = c
	}
}

// ForceClose emits a synthetic TOOL_CALL_END for every open call, in
// start order, and releases them.
func (t *ToolCalls) ForceClose() []events.Event {
	var out []events.Event
	for _, c := range t.order {
		if !c.open {
			continue
		}
		c.open = false
		out = append(out, events.NewToolCallEndEvent(c.externalID))
	}
	clear(t.active)
	return out
}

// Reset clears all state, including the id remap table.
func (t *ToolCalls) Reset() {
	clear(t.active)
	clear(t.resolved)
	t.order = nil
}

func encodeFragment(fragment any) (string, error) {
	switch v := fragment.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case json.RawMessage:
		return string(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("encode args fragment: %w", err)
		}
		return string(data), nil
	}
}
