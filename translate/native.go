package translate

// Kind identifies the shape of a Native event. Adapters reduce their
// framework's stream types to these kinds; the Translator dispatches on
// them and never sees framework types.
type Kind string

const (
	// KindTextDelta carries an incremental assistant text fragment.
	KindTextDelta Kind = "text_delta"
	// KindTextDone closes the open assistant text message, if any.
	KindTextDone Kind = "text_done"
	// KindThinkingDelta carries an incremental reasoning fragment.
	KindThinkingDelta Kind = "thinking_delta"
	// KindThinkingDone closes the open reasoning block, if any.
	KindThinkingDone Kind = "thinking_done"
	// KindRefusalDelta carries an incremental refusal fragment.
	KindRefusalDelta Kind = "refusal_delta"
	// KindRefusalDone closes the open refusal message, if any.
	KindRefusalDone Kind = "refusal_done"
	// KindToolCallBegin announces a tool call. Streaming reports whether
	// argument fragments will follow; Args may carry complete arguments
	// for non-streaming calls.
	KindToolCallBegin Kind = "tool_call_begin"
	// KindToolCallDelta carries an incremental argument fragment.
	KindToolCallDelta Kind = "tool_call_delta"
	// KindToolCallDone closes an open tool call.
	KindToolCallDone Kind = "tool_call_done"
	// KindToolCallRemap folds a second native id onto an already-seen
	// call. ToolCallID holds the original id, ConfirmedID the new one.
	KindToolCallRemap Kind = "tool_call_remap"
	// KindToolResult carries a tool execution result.
	KindToolResult Kind = "tool_result"
	// KindStateSnapshot carries a full shared-state snapshot.
	KindStateSnapshot Kind = "state_snapshot"
	// KindStateDelta carries an incremental shared-state update.
	KindStateDelta Kind = "state_delta"
	// KindResponseDone marks the end of one model response. It closes
	// every open message channel unconditionally.
	KindResponseDone Kind = "response_done"
	// KindCustom passes framework-specific metadata through untouched.
	KindCustom Kind = "custom"
)

// Native is the neutral event shape the Translator consumes. Only the
// fields relevant to the Kind are set; the rest stay zero.
type Native struct {
	Kind Kind

	// Text is the fragment for text, thinking, and refusal deltas.
	Text string
	// Title optionally labels a thinking block; honored on the delta
	// that opens the block.
	Title string
	// MessageID optionally fixes the protocol message id for the next
	// text message, for frameworks that assign item ids themselves.
	MessageID string

	// ToolCallID is the framework's native id for tool call events.
	ToolCallID string
	// ToolName is the tool name on a tool_call_begin.
	ToolName string
	// Args carries complete serialized arguments on a non-streaming
	// tool_call_begin.
	Args string
	// ArgsDelta is the argument fragment on a tool_call_delta. Non-string
	// values are JSON-encoded before emission.
	ArgsDelta any
	// Streaming reports, on a tool_call_begin, that argument fragments
	// follow. It is the continuation flag: empty Args on a streaming
	// call means "arguments not yet delivered", not "no arguments".
	Streaming bool
	// ConfirmedID is the second native id on a tool_call_remap.
	ConfirmedID string
	// Result is the tool output on a tool_result.
	Result string

	// State is the snapshot or delta payload for state events.
	State map[string]any

	// Name and Value carry custom event payloads.
	Name  string
	Value any
}
