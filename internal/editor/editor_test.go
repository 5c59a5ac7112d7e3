package editor

import "testing"

func TestStripInstructions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "instructions kept by the user",
			content: instructions + "SELECT *\nFROM users\n",
			want:    "SELECT *\nFROM users",
		},
		{
			name:    "instructions removed by the user",
			content: "\n  SELECT 1\n",
			want:    "SELECT 1",
		},
		{
			name:    "only instructions",
			content: instructions,
			want:    "",
		},
		{
			name:    "header without separator",
			content: "-- Enter your SQL query below\nSELECT 1",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripInstructions(tt.content); got != tt.want {
				t.Errorf("StripInstructions() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("top users/2024"); got != "top_users_2024" {
		t.Errorf("sanitize() = %q, want top_users_2024", got)
	}
}
