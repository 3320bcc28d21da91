package catalog_test

import (
	"testing"

	"github.com/joshyorko/sakdash/catalog"
)

func TestArgumentKinds(t *testing.T) {
	tests := []struct {
		name     string
		argType  string
		expected catalog.Kind
	}{
		{"bool", "bool", catalog.KindBool},
		{"string", "string", catalog.KindString},
		{"list", "list", catalog.KindList},
		{"int", "int", catalog.KindInt},
		{"float", "float", catalog.KindFloat},
		{"date", "date", catalog.KindDate},
		{"case is ignored", " Bool ", catalog.KindBool},
		{"unknown stays inert", "weekday", catalog.KindUnsupported},
		{"empty stays inert", "", catalog.KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arg := catalog.ArgSpec{Name: "x", Type: tt.argType}
			if got := arg.Kind(); got != tt.expected {
				t.Errorf("Kind() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestChoicesAndDefaultsBecomeText(t *testing.T) {
	root, err := catalog.Parse([]byte(sampleTree))
	if err != nil {
		t.Fatal(err)
	}
	sum := root.SubCmds[1].SubCmds[0]
	mode, ok := sum.Arg("mode")
	if !ok {
		t.Fatal("mode argument missing")
	}
	if len(mode.Choices) != 2 || mode.Choices[0] != "fast" || mode.Choices[1] != "2" {
		t.Errorf("unexpected choices %#v", mode.Choices)
	}
	values, _ := sum.Arg("values")
	if values.HasChoices() {
		t.Errorf("null choices should be empty, got %#v", values.Choices)
	}
	if _, ok := sum.Arg("nope"); ok {
		t.Errorf("unknown argument should not be found")
	}

	tests := []struct {
		name     string
		value    interface{}
		expected []string
	}{
		{"missing", nil, nil},
		{"string", "hello", []string{"hello"}},
		{"whole number", float64(3), []string{"3"}},
		{"fraction", 2.5, []string{"2.5"}},
		{"bool", true, []string{"true"}},
		{"list", []interface{}{"a", float64(1)}, []string{"a", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arg := catalog.ArgSpec{Name: "x", Type: "string", Default: tt.value}
			got := arg.DefaultValues()
			if len(got) != len(tt.expected) {
				t.Fatalf("DefaultValues() = %#v, want %#v", got, tt.expected)
			}
			for at := range got {
				if got[at] != tt.expected[at] {
					t.Errorf("DefaultValues() = %#v, want %#v", got, tt.expected)
				}
			}
		})
	}
}

func TestTitleFallsBackToPath(t *testing.T) {
	node := &catalog.CommandNode{Path: "/root/tools/sum"}
	if node.Title() != "sum" {
		t.Errorf("Title() = %q", node.Title())
	}
	node.Name = "Sum it"
	if node.Title() != "Sum it" {
		t.Errorf("Title() = %q", node.Title())
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := catalog.Parse([]byte("<html>")); err == nil {
		t.Error("expected an error for non JSON content")
	}
}
