// Package message models the four on-disk message shapes found in a Claude
// Code session JSONL file and derives the searchable text for each.
package message

import (
	"encoding/json"
	"time"
)

// Role identifies the discriminator of a parsed message.
type Role string

const (
	RoleSummary   Role = "summary"
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is the tagged sum type over the four shapes described in the
// on-disk format. Only the fields relevant to the active Role are
// populated; the rest are zero values.
type Message struct {
	Type Role

	// Common metadata, present on every type except summary.
	UUID        string
	Timestamp   time.Time
	HasTime     bool
	SessionID   string
	CWD         string
	ParentUUID  string
	GitBranch   string
	Version     string
	UserType    string
	IsSidechain bool

	// summary
	Summary  string
	LeafUUID string

	// system
	SystemContent string
	IsMeta        bool
	ToolUseID     string
	Level         string

	// user / assistant
	MessageRole    string
	Content        []ContentItem
	Model          string
	MessageID      string
	StopReason     string
	StopSequence   string
	Usage          *Usage
}

// Usage carries assistant token accounting, copied straight off the wire
// shape; it plays no part in search but travels with the message so a
// future consumer (stats overlays, cost estimation) does not need a
// second parse pass.
type Usage struct {
	InputTokens              int
	OutputTokens             int
	CacheCreationInputTokens int
	CacheReadInputTokens     int
}

// ContentItemType identifies the discriminator of a ContentItem.
type ContentItemType string

const (
	ContentText       ContentItemType = "text"
	ContentThinking   ContentItemType = "thinking"
	ContentToolUse    ContentItemType = "tool_use"
	ContentToolResult ContentItemType = "tool_result"
	ContentImage      ContentItemType = "image"
)

// ContentItem is the sum type nested inside a user/assistant content array.
type ContentItem struct {
	Type ContentItemType

	// text
	Text string

	// thinking
	Thinking string
	Signature string

	// tool_use
	ToolUseID string
	ToolName  string
	ToolInput json.RawMessage

	// tool_result
	ToolResultForID string
	ToolResultText  string // normalized text payload, see extractToolResultText in parse.go
	IsError         bool

	// image: carried only for display, contributes no searchable text.
	ImagePlaceholder bool
}

// HasTools reports whether any content item is a tool_use block.
func (m *Message) HasTools() bool {
	for _, c := range m.Content {
		if c.Type == ContentToolUse {
			return true
		}
	}
	return false
}

// HasThinking reports whether any content item is a thinking block.
func (m *Message) HasThinking() bool {
	for _, c := range m.Content {
		if c.Type == ContentThinking {
			return true
		}
	}
	return false
}
