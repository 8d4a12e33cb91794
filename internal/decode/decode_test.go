package decode

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBytesUTF8(t *testing.T) {
	in := []byte("name,city\nRenée,Zürich\n")
	res := Bytes(in)

	if res.Encoding != UTF8 {
		t.Errorf("Encoding = %q, want %q", res.Encoding, UTF8)
	}
	if res.Fallback {
		t.Error("Fallback = true for valid UTF-8 input")
	}
	if res.Text != string(in) {
		t.Errorf("Text = %q, want %q", res.Text, string(in))
	}
}

func TestBytesLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 but an invalid standalone byte in UTF-8.
	in := []byte{'c', 'a', 'f', 0xE9, ',', '1', '\n'}
	res := Bytes(in)

	if res.Encoding != Latin1 {
		t.Errorf("Encoding = %q, want %q", res.Encoding, Latin1)
	}
	if !res.Fallback {
		t.Error("Fallback = false for invalid UTF-8 input")
	}
	if !utf8.ValidString(res.Text) {
		t.Error("decoded text is not valid UTF-8")
	}
	if !strings.HasPrefix(res.Text, "café") {
		t.Errorf("Text = %q, want prefix %q", res.Text, "café")
	}
}

func TestBytesEmpty(t *testing.T) {
	res := Bytes(nil)
	if res.Text != "" {
		t.Errorf("Text = %q, want empty", res.Text)
	}
	if res.Encoding != UTF8 {
		t.Errorf("Encoding = %q, want %q", res.Encoding, UTF8)
	}
}

func TestBytesEveryByteDecodes(t *testing.T) {
	in := make([]byte, 256)
	for i := range in {
		in[i] = byte(i)
	}
	res := Bytes(in)
	if !utf8.ValidString(res.Text) {
		t.Error("decoded text is not valid UTF-8")
	}
	if utf8.RuneCountInString(res.Text) != 256 {
		t.Errorf("rune count = %d, want 256", utf8.RuneCountInString(res.Text))
	}
}
