package utils

import (
	"testing"
)

type testPayload struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

func TestDecodeModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    testPayload
		wantErr bool
	}{
		{
			name:  "clean JSON",
			input: `{"name": "a", "score": 3}`,
			want:  testPayload{Name: "a", Score: 3},
		},
		{
			name:  "fenced code block",
			input: "Here you go:\n```json\n{\"name\": \"b\", \"score\": 1}\n```",
			want:  testPayload{Name: "b", Score: 1},
		},
		{
			name:  "fence without language tag",
			input: "```\n{\"name\": \"c\", \"score\": 2}\n```",
			want:  testPayload{Name: "c", Score: 2},
		},
		{
			name:  "embedded in prose",
			input: `Sure! The answer is {"name": "d", "score": 4} as requested.`,
			want:  testPayload{Name: "d", Score: 4},
		},
		{
			name:  "trailing comma",
			input: `{"name": "e", "score": 5,}`,
			want:  testPayload{Name: "e", Score: 5},
		},
		{
			name:  "braces inside string values",
			input: `{"name": "curly } brace", "score": 6}`,
			want:  testPayload{Name: "curly } brace", Score: 6},
		},
		{
			name:    "no JSON at all",
			input:   "I could not produce a result.",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got testPayload
			err := DecodeModelJSON(tt.input, &got)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeModelJSON failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeModelJSONArray(t *testing.T) {
	var got []int
	if err := DecodeModelJSON("The list: [1, 2, 3] done.", &got); err != nil {
		t.Fatalf("DecodeModelJSON failed: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("Got %v, want [1 2 3]", got)
	}
}
