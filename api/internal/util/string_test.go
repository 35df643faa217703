package util

import (
	"strings"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no fence", `{"500": 3, "100": 1}`, `{"500": 3, "100": 1}`},
		{"no fence padded", "\n  {\"1\": 0}\t\n", `{"1": 0}`},
		{"json tag", "```json\n{\"10000\":2,\"5000\":0}\n```", `{"10000":2,"5000":0}`},
		{"upper tag", "```JSON\n{\"1\":1}\n```", `{"1":1}`},
		{"no tag", "```\n{\"1\":1}\n```", `{"1":1}`},
		{"only opening", "```json\n{\"1\":1}", `{"1":1}`},
		{"only closing", "{\"1\":1}\n```", `{"1":1}`},
		{"single line", "```json {\"1\":1}```", `{"1":1}`},
		{"single line no tag", "```{\"1\":1}```", `{"1":1}`},
		{"surrounding whitespace", "  \n```json\n{\"5\":4}\n```\n ", `{"5":4}`},
		{"multiline body", "```json\n{\n  \"10\": 7,\n  \"50\": 1\n}\n```", "{\n  \"10\": 7,\n  \"50\": 1\n}"},
		{"fence only", "```json", ""},
		{"annotated tag", "```json:out\n{\"1\":1}\n```", `{"1":1}`},
		{"tag with title", "```json title=\"counts\"\n{\"5\":2}\n```", `{"5":2}`},
		{"tag and brace on opening line", "```json {\n\"10\": 3\n}\n```", "{\n\"10\": 3\n}"},
		{"payload on opening line", "```{\"1\":1,\n\"5\":2}\n```", "{\"1\":1,\n\"5\":2}"},
		{"prose", "I see five 500-yen coins", "I see five 500-yen coins"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFences(tc.in); got != tc.want {
				t.Fatalf("StripCodeFences(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripCodeFencesIdempotent(t *testing.T) {
	in := "```json\n{\"100\":2}\n```"
	once := StripCodeFences(in)
	if twice := StripCodeFences(once); twice != once {
		t.Fatalf("second pass changed %q to %q", once, twice)
	}
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("x", 250)
	if got := Excerpt(long, 200); len(got) != 200 {
		t.Fatalf("len = %d, want 200", len(got))
	}
	if got := Excerpt("short", 200); got != "short" {
		t.Fatalf("got %q", got)
	}
	jp := strings.Repeat("円", 201)
	if got := []rune(Excerpt(jp, 200)); len(got) != 200 {
		t.Fatalf("rune len = %d, want 200", len(got))
	}
	if got := Excerpt("abc", 0); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestProviderAccepts(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if m := DetectMIME(png); m != "image/png" {
		t.Fatalf("DetectMIME = %q", m)
	}
	if !ProviderAccepts("image/jpeg") {
		t.Fatal("jpeg should be accepted")
	}
	if ProviderAccepts("image/bmp") {
		t.Fatal("bmp should need conversion")
	}
}
