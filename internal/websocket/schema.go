package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError      Event = "error"
	EventSubmission Event = "submission"
	EventPong       Event = "pong"
)

// SubmissionEvent carries a freshly accepted submission to monitor clients.
// Payload is the submission JSON as published to the exam's monitor channel.
type SubmissionEvent struct {
	Event   Event       `json:"event"`
	Payload interface{} `json:"payload"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
