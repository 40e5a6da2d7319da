package tokenizer

import (
	"reflect"
	"testing"
)

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			"assignment",
			`"match = pat.search(current_line, 0, pos)"`,
			[]string{"match", "pat", "search", "current", "line", "pos"},
		},
		{
			"mixed-identifiers",
			"_obj.doSomething(VALUE, FooBar + Blah_Foo)",
			[]string{"obj", "do", "Something", "VALUE", "Foo", "Bar", "Blah", "Foo"},
		},
		{
			"acronyms",
			"HTTPResponse getXMLElement",
			[]string{"HTTP", "Response", "get", "XML", "Element"},
		},
		{
			"digits-split",
			"args.reps = float('+inf')",
			[]string{"args", "reps", "float", "inf"},
		},
		{
			"shell-fragment",
			"help='run /bin/sh -c CMD')",
			[]string{"help", "run", "bin", "sh", "c", "CMD"},
		},
		{
			"apostrophes",
			"Mr. O'Reilly & Sons Ltd.",
			[]string{"Mr", "O'Reilly", "Sons", "Ltd"},
		},
		{
			"contraction",
			"// this aren't rock'n'roll",
			[]string{"this", "aren't", "rock'n'roll"},
		},
		{
			"trailing-apostrophe-not-joined",
			"the dogs' dinner",
			[]string{"the", "dogs", "dinner"},
		},
		{
			"digits-inside-identifier",
			"base64Encode sha256sum",
			[]string{"base", "Encode", "sha", "sum"},
		},
		{
			"screaming-case",
			"HTTP_NOT_FOUND",
			[]string{"HTTP", "NOT", "FOUND"},
		},
		{
			"empty",
			"",
			nil,
		},
		{
			"no-letters",
			"123 + 456 == 0x2a",
			[]string{"x", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLine(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitLinePure(t *testing.T) {
	line := "getHTTPResponse(parseJSON(raw_input))"
	first := SplitLine(line)
	for i := 0; i < 3; i++ {
		again := SplitLine(line)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("call %d: got %v, want %v", i, again, first)
		}
	}
}

func TestStripper(t *testing.T) {
	tests := []struct {
		name     string
		literals []string
		line     string
		want     []string
	}{
		{
			"whole-word-removed",
			[]string{"Copyright"},
			"// Copyright 2009 somebody",
			[]string{"somebody"},
		},
		{
			"embedded-not-removed",
			[]string{"spell"},
			"kodespell spell spelling",
			[]string{"kodespell", "spelling"},
		},
		{
			"multiple-literals",
			[]string{"foo", "bar"},
			"foo calls bar via foobar",
			[]string{"calls", "via", "foobar"},
		},
		{
			"no-literals",
			nil,
			"leave me alone",
			[]string{"leave", "me", "alone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStripper(tt.literals)
			got := SplitLine(s.Apply(tt.line))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("after strip: got %v, want %v", got, tt.want)
			}
		})
	}
}
