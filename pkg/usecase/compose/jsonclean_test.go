package compose_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/mizutamari/keepsake/pkg/usecase/compose"
)

func TestCleanJSON(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "already clean",
			input: `{"a":1}`,
			want:  `{"a":1}`,
		},
		{
			name:  "markdown fenced with preamble",
			input: "Sure! ```json\n{\"a\":1}\n```",
			want:  `{"a":1}`,
		},
		{
			name:  "prose around the object",
			input: "Here is the data: {\"a\":1} hope it helps!",
			want:  `{"a":1}`,
		},
		{
			name:  "empty input",
			input: "",
			want:  "{}",
		},
		{
			name:  "no object at all",
			input: "I could not produce anything",
			want:  "I could not produce anything",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.V(t, compose.CleanJSON(tc.input)).Equal(tc.want)
		})
	}
}

func TestCleanJSONIsIdempotent(t *testing.T) {
	inputs := []string{
		`{"a":1}`,
		"Sure! ```json\n{\"a\":1}\n```",
		`{"nested":{"b":[1,2,3]}}`,
	}

	for _, input := range inputs {
		once := compose.CleanJSON(input)
		gt.V(t, compose.CleanJSON(once)).Equal(once)
	}
}
