package message

import "testing"

func TestSearchableText(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{
			name: "summary",
			msg:  Message{Type: RoleSummary, Summary: "fixed the bug"},
			want: "fixed the bug",
		},
		{
			name: "system",
			msg:  Message{Type: RoleSystem, SystemContent: "session started"},
			want: "session started",
		},
		{
			name: "user string content via parse normalization",
			msg:  Message{Type: RoleUser, Content: []ContentItem{{Type: ContentText, Text: "hello"}}},
			want: "hello",
		},
		{
			name: "user array content joins text and tool_result",
			msg: Message{Type: RoleUser, Content: []ContentItem{
				{Type: ContentText, Text: "look at this"},
				{Type: ContentToolResult, ToolResultText: "file contents here"},
				{Type: ContentImage, ImagePlaceholder: true},
			}},
			want: "look at this\nfile contents here",
		},
		{
			name: "assistant joins text and thinking, skips tool_use",
			msg: Message{Type: RoleAssistant, Content: []ContentItem{
				{Type: ContentThinking, Thinking: "let me think"},
				{Type: ContentToolUse, ToolName: "Bash"},
				{Type: ContentText, Text: "done"},
			}},
			want: "let me think\ndone",
		},
		{
			name: "unrecognized type yields empty string",
			msg:  Message{Type: Role("unknown")},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SearchableText(&tt.msg); got != tt.want {
				t.Errorf("SearchableText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasToolsAndHasThinking(t *testing.T) {
	m := Message{Content: []ContentItem{
		{Type: ContentText, Text: "x"},
		{Type: ContentToolUse, ToolName: "Bash"},
		{Type: ContentThinking, Thinking: "y"},
	}}
	if !m.HasTools() {
		t.Error("expected HasTools() == true")
	}
	if !m.HasThinking() {
		t.Error("expected HasThinking() == true")
	}

	m2 := Message{Content: []ContentItem{{Type: ContentText, Text: "x"}}}
	if m2.HasTools() {
		t.Error("expected HasTools() == false")
	}
	if m2.HasThinking() {
		t.Error("expected HasThinking() == false")
	}
}
