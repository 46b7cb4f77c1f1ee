package script

import (
	"testing"

	zygo "github.com/glycerine/zygomys/zygo"
)

func TestParseArgs(t *testing.T) {
	args := []zygo.Sexp{
		&zygo.SexpInt{Val: 7},
		&zygo.SexpStr{S: kwPrefix + "cells"},
		&zygo.SexpInt{Val: 64},
	}
	pa := parseArgs(args)
	if len(pa.positional) != 1 {
		t.Fatalf("got %d positional args, want 1", len(pa.positional))
	}
	v, ok := pa.kw["cells"]
	if !ok {
		t.Fatal("missing cells keyword")
	}
	n, err := toInt(v)
	if err != nil || n != 64 {
		t.Errorf("cells = %v (%v), want 64", v, err)
	}
}

func TestParseArgsTrailingKeyword(t *testing.T) {
	args := []zygo.Sexp{&zygo.SexpStr{S: kwPrefix + "flag"}}
	pa := parseArgs(args)
	if v, ok := pa.kw["flag"]; !ok || v != zygo.SexpNull {
		t.Errorf("trailing keyword should map to null, got %v", v)
	}
}

func TestToFloat64(t *testing.T) {
	if f, err := toFloat64(&zygo.SexpInt{Val: 3}); err != nil || f != 3 {
		t.Errorf("toFloat64(int 3) = %v, %v", f, err)
	}
	if f, err := toFloat64(&zygo.SexpFloat{Val: 2.5}); err != nil || f != 2.5 {
		t.Errorf("toFloat64(float 2.5) = %v, %v", f, err)
	}
	if _, err := toFloat64(&zygo.SexpStr{S: "x"}); err == nil {
		t.Error("expected error for string")
	}
}
