package message

import (
	"encoding/json"
	"time"
)

// wireMessage mirrors the on-disk JSONL line shape. Field names match the
// Claude Code session format directly (see DefaultPattern in the discover
// package for where these files live on disk).
type wireMessage struct {
	Type        string          `json:"type"`
	UUID        string          `json:"uuid"`
	ParentUUID  *string         `json:"parentUuid"`
	SessionID   string          `json:"sessionId"`
	Timestamp   string          `json:"timestamp"`
	CWD         string          `json:"cwd"`
	GitBranch   string          `json:"gitBranch"`
	Version     string          `json:"version"`
	UserType    string          `json:"userType"`
	IsSidechain bool            `json:"isSidechain"`
	IsMeta      *bool           `json:"isMeta"`
	ToolUseID   string          `json:"toolUseID"`
	Level       string          `json:"level"`
	Content     string          `json:"content"` // system message text
	Summary     string          `json:"summary"`
	LeafUUID    string          `json:"leafUuid"`
	Message     *wireMessageBody `json:"message"`
}

type wireMessageBody struct {
	Role         string          `json:"role"`
	Content      json.RawMessage `json:"content"`
	Model        string          `json:"model"`
	ID           string          `json:"id"`
	StopReason   *string         `json:"stop_reason"`
	StopSequence *string         `json:"stop_sequence"`
	Usage        *wireUsage      `json:"usage"`
}

type wireUsage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
}

type wireContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Thinking  string          `json:"thinking"`
	Signature string          `json:"signature"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
	IsError   bool            `json:"is_error"`
}

// Parse parses a single JSONL line into a Message. ok is false when the
// line is malformed JSON or its type discriminator is not one of the four
// recognized shapes; the caller skips such lines rather than aborting the
// file.
func Parse(line []byte) (Message, bool) {
	var w wireMessage
	if err := json.Unmarshal(line, &w); err != nil {
		return Message{}, false
	}

	switch Role(w.Type) {
	case RoleSummary:
		return Message{
			Type:     RoleSummary,
			Summary:  w.Summary,
			LeafUUID: w.LeafUUID,
		}, true
	case RoleSystem:
		return parseCommon(w, Message{
			Type:          RoleSystem,
			SystemContent: w.Content,
			IsMeta:        w.IsMeta != nil && *w.IsMeta,
			ToolUseID:     w.ToolUseID,
			Level:         w.Level,
		}), true
	case RoleUser, RoleAssistant:
		if w.Message == nil {
			return Message{}, false
		}
		m := parseCommon(w, Message{
			Type:        Role(w.Type),
			MessageRole: w.Message.Role,
			Model:       w.Message.Model,
			MessageID:   w.Message.ID,
		})
		m.Content = parseContentArray(w.Message.Content)
		if w.Message.StopReason != nil {
			m.StopReason = *w.Message.StopReason
		}
		if w.Message.StopSequence != nil {
			m.StopSequence = *w.Message.StopSequence
		}
		if w.Message.Usage != nil {
			m.Usage = &Usage{
				InputTokens:              w.Message.Usage.InputTokens,
				OutputTokens:             w.Message.Usage.OutputTokens,
				CacheCreationInputTokens: w.Message.Usage.CacheCreationInputTokens,
				CacheReadInputTokens:     w.Message.Usage.CacheReadInputTokens,
			}
		}
		return m, true
	default:
		return Message{}, false
	}
}

func parseCommon(w wireMessage, m Message) Message {
	m.UUID = w.UUID
	m.SessionID = w.SessionID
	m.CWD = w.CWD
	m.GitBranch = w.GitBranch
	m.Version = w.Version
	m.UserType = w.UserType
	m.IsSidechain = w.IsSidechain
	if w.ParentUUID != nil {
		m.ParentUUID = *w.ParentUUID
	}
	if t, err := time.Parse(time.RFC3339, w.Timestamp); err == nil {
		m.Timestamp = t
		m.HasTime = true
	}
	return m
}

// parseContentArray normalizes message.content into the list form,
// regardless of whether the wire value was a bare string or an array of
// content blocks, so downstream code (extraction, predicates) never has to
// branch on the wire shape.
func parseContentArray(raw json.RawMessage) []ContentItem {
	if len(raw) == 0 {
		return nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return []ContentItem{{Type: ContentText, Text: asString}}
	}

	var blocks []wireContentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil
	}

	items := make([]ContentItem, 0, len(blocks))
	for _, b := range blocks {
		switch b.Type {
		case "text":
			items = append(items, ContentItem{Type: ContentText, Text: b.Text})
		case "thinking":
			items = append(items, ContentItem{Type: ContentThinking, Thinking: b.Thinking, Signature: b.Signature})
		case "tool_use":
			items = append(items, ContentItem{
				Type:      ContentToolUse,
				ToolUseID: b.ID,
				ToolName:  b.Name,
				ToolInput: b.Input,
			})
		case "tool_result":
			items = append(items, ContentItem{
				Type:            ContentToolResult,
				ToolResultForID: b.ToolUseID,
				ToolResultText:  extractToolResultText(b.Content),
				IsError:         b.IsError,
			})
		case "image":
			items = append(items, ContentItem{Type: ContentImage, ImagePlaceholder: true})
		}
	}
	return items
}

// extractToolResultText normalizes a tool_result's content payload, which
// is either a bare string, a list of {type:"text", text:…} items, or
// absent.
func extractToolResultText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	var items []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return ""
	}
	out := ""
	for _, it := range items {
		if it.Type == "text" {
			out += it.Text
		}
	}
	return out
}
