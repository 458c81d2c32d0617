package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"balanced", "<b><i>x</i></b>", nil},
		{"void tags exempt", "a<br>b<hr><img src=x>", nil},
		{"void closing ignored", "a</br>", nil},
		{"unclosed", "<b><i>x", []string{"Unclosed tags: b, i"}},
		{"unexpected close", "x</b>", []string{"Unexpected closing tag: </b>"}},
		{
			name:  "mismatch recovers",
			input: "<b><i>x</b>y",
			want:  []string{"Mismatched closing tag: expected </i> but found </b>"},
		},
		{
			name:  "mismatch with unknown name",
			input: "<b>x</i></b>",
			want:  []string{"Mismatched closing tag: expected </b> but found </i>"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ValidateStructure(Lex(tc.input))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ValidateStructure(%q) mismatch (-want +got):\n%s", tc.input, diff)
			}
		})
	}
}

func TestIsVoid(t *testing.T) {
	for _, name := range []string{"br", "HR", "img", "input", "meta", "link"} {
		if !IsVoid(name) {
			t.Errorf("expected %s to be void", name)
		}
	}
	if IsVoid("p") {
		t.Error("expected p not to be void")
	}
}
