package xmlenc

import (
	"io"
	"strings"
	"testing"
)

func TestCharsetReader_PassThroughUTF8(t *testing.T) {
	r, err := CharsetReader("UTF-8", strings.NewReader("abc"))
	if err != nil {
		t.Fatal(err)
	}
	out, _ := io.ReadAll(r)
	if string(out) != "abc" {
		t.Errorf("expected pass-through, got %q", out)
	}
}

func TestCharsetReader_Latin1(t *testing.T) {
	r, err := CharsetReader("ISO-8859-1", strings.NewReader("caf\xe9"))
	if err != nil {
		t.Fatal(err)
	}
	out, _ := io.ReadAll(r)
	if string(out) != "café" {
		t.Errorf("expected decoded latin-1, got %q", out)
	}
}

func TestCharsetReader_UnknownCharsetNotFatal(t *testing.T) {
	r, err := CharsetReader("x-made-up", strings.NewReader("data"))
	if err != nil {
		t.Fatal("unknown charsets must not error")
	}
	out, _ := io.ReadAll(r)
	if string(out) != "data" {
		t.Errorf("expected pass-through, got %q", out)
	}
}
