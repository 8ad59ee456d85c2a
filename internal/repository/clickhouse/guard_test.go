package clickhouse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScoreName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "plain metric", input: "accuracy", wantErr: false},
		{name: "underscores", input: "exact_match", wantErr: false},
		{name: "hyphen", input: "f1-score", wantErr: false},
		{name: "dotted", input: "rouge.l", wantErr: false},
		{name: "mixed case and digits", input: "BLEU4", wantErr: false},

		{name: "empty", input: "", wantErr: true},
		{name: "single quote", input: "name' OR 1=1", wantErr: true},
		{name: "double quote", input: `a"b`, wantErr: true},
		{name: "statement separator", input: "a;DROP TABLE evaluation_scores", wantErr: true},
		{name: "comment marker", input: "a--b", wantErr: true},
		{name: "embedded space", input: "a UNION SELECT", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
		{name: "backtick", input: "a`b", wantErr: true},
		{name: "newline", input: "a\nb", wantErr: true},
		{name: "too long", input: strings.Repeat("a", maxScoreNameLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateScoreName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
