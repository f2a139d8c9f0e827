// Package events defines the AG-UI protocol event model.
//
// AG-UI (Agent-User Interface) is an open, lightweight, event-based protocol
// that standardizes how AI agents connect to user-facing applications. Events
// form a closed, tagged union: every event carries a type tag and an optional
// Unix-millisecond timestamp, plus the fields its variant requires.
//
// # Event Lifecycles
//
// Several event families form Start-Content-End triples that must be
// correctly paired and non-overlapping:
//
//   - TEXT_MESSAGE_START / TEXT_MESSAGE_CONTENT / TEXT_MESSAGE_END share a
//     message ID for the lifetime of one assistant message.
//   - THINKING_TEXT_MESSAGE_* mirrors the text triple for the reasoning
//     channel, nested inside a THINKING_START / THINKING_END bracket.
//   - TOOL_CALL_START / TOOL_CALL_ARGS / TOOL_CALL_END share a tool call ID;
//     TOOL_CALL_RESULT reports the outcome under the same ID.
//   - RUN_STARTED opens a run; exactly one of RUN_FINISHED or RUN_ERROR
//     closes it.
//
// Use [ValidateSequence] to check a recorded event sequence against these
// pairing rules.
//
// # Construction
//
// Each variant has a constructor (NewTextMessageStartEvent, etc.) that stamps
// the current timestamp. ID helpers ([GenerateMessageID], [GenerateToolCallID],
// [GenerateThreadID], [GenerateRunID]) produce protocol-prefixed unique IDs.
package events
