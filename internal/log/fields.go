// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldJobID     = "job_id"
	FieldChannelID = "channel_id"
	FieldEventID   = "event_id"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldStage     = "stage"
	FieldTrigger   = "trigger"

	// Counters
	FieldMatches    = "matches"
	FieldChannels   = "channels"
	FieldProgrammes = "programmes"
	FieldPlayables  = "playables"

	// Path / URL fields
	FieldPath    = "path"
	FieldBaseURL = "base_url"
	FieldMethod  = "method"
	FieldStatus  = "status"

	FieldDurationMS = "duration_ms"
)
