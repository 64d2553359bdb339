package message

import "strings"

// SearchableText produces the single string that represents a message's
// user-searchable text, following the extraction rules in order. A message
// whose content cannot be extracted yields the empty string rather than an
// error: extraction is total.
func SearchableText(m *Message) string {
	switch m.Type {
	case RoleSummary:
		return m.Summary
	case RoleSystem:
		return m.SystemContent
	case RoleUser:
		return extractUserText(m.Content)
	case RoleAssistant:
		return extractAssistantText(m.Content)
	default:
		return ""
	}
}

func extractUserText(items []ContentItem) string {
	var parts []string
	for _, item := range items {
		switch item.Type {
		case ContentText:
			parts = append(parts, item.Text)
		case ContentToolResult:
			parts = append(parts, item.ToolResultText)
		case ContentThinking, ContentToolUse, ContentImage:
			// contribute no text for user messages
		}
	}
	return strings.Join(parts, "\n")
}

func extractAssistantText(items []ContentItem) string {
	var parts []string
	for _, item := range items {
		switch item.Type {
		case ContentText:
			parts = append(parts, item.Text)
		case ContentThinking:
			parts = append(parts, item.Thinking)
		case ContentToolUse, ContentToolResult, ContentImage:
			// tool_use contributes no text for assistant messages
		}
	}
	return strings.Join(parts, "\n")
}
