package ws

const ProtocolVersion = "1.0"

const (
	MsgCommand       = "command"
	MsgCommandResult = "command_result"
	MsgPing          = "ping"
	MsgPong          = "pong"

	maxRequestIDLen = 64
)

type CommandMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id"`
	ChatID    string `json:"chat_id"`
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
}

type CommandResult struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RequestID       string `json:"request_id,omitempty"`
	Ok              bool   `json:"ok"`
	Command         string `json:"command,omitempty"`
	Text            string `json:"text,omitempty"`
	Error           string `json:"error,omitempty"`
	Data            any    `json:"data,omitempty"`
}

type Pong struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	TimestampMS     int64  `json:"timestamp_ms"`
}
