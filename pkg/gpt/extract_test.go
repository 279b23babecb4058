package gpt

import "testing"

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "fenced block with language tag",
			response: "Here is the code:\n```go\napp := krita.Instance()\ndoc := app.ActiveDocument()\n```\nThat should do it.",
			want:     "app := krita.Instance()\ndoc := app.ActiveDocument()",
		},
		{
			name:     "fenced block without language tag",
			response: "```\ndoc.RefreshProjection()\n```",
			want:     "doc.RefreshProjection()",
		},
		{
			name:     "first block wins",
			response: "```go\nfirst := 1\n```\ntext\n```go\nsecond := 2\n```",
			want:     "first := 1",
		},
		{
			name:     "no fence treats whole response as code",
			response: "app := krita.Instance()\ndoc := app.ActiveDocument()",
			want:     "app := krita.Instance()\ndoc := app.ActiveDocument()",
		},
		{
			name:     "explanation markers filtered without fence",
			response: "Note: this rotates the layer\nnode.RotateNode(0.5)\nWarning: radians, not degrees\ndoc.RefreshProjection()",
			want:     "node.RotateNode(0.5)\ndoc.RefreshProjection()",
		},
		{
			name:     "error and info markers filtered",
			response: "Error: cannot comply\nINFO: fallback\nfmt.Println(\"hi\")",
			want:     "fmt.Println(\"hi\")",
		},
		{
			name:     "blank lines dropped without fence",
			response: "a := 1\n\n\nb := 2",
			want:     "a := 1\nb := 2",
		},
		{
			name:     "empty response",
			response: "",
			want:     "",
		},
		{
			name:     "marker inside fence survives",
			response: "```go\n// Note: kept verbatim\nx := 1\n```",
			want:     "// Note: kept verbatim\nx := 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractCode(tt.response); got != tt.want {
				t.Errorf("ExtractCode() = %q, want %q", got, tt.want)
			}
		})
	}
}
