package markup

import (
	"reflect"
	"testing"

	"github.com/kobzarvs/micronaut/internal/document"
)

func TestRoundTrip(t *testing.T) {
	sources := []string{
		"",
		"plain text",
		"a\n\nb",
		"a\n\n",
		"`!bold`! `*it`*`_u`_ done",
		"`!a\nb\n``c",
		"`Ff00red`f `B00fblue`b",
		"`Fg50gray `F777hex `Fg33dim",
		"a`=b",
		"a\\`!b \\\\ back",
		"\\#not a comment\n\\-not a divider\n\\>not a heading\n\\<not a reset",
		">Title\n>>\n>>>>deep\nbody\n<reset",
		">h\ntext\n-\n-=\n# comment",
		"`c\n\nx",
		"`ccentered`a\nstill left",
		"`ccentered``\nnext",
		"`F8ff`B222`c\n\n`[Link`/a]",
		"`rright\n-\n`cafter divider",
		"`[http://x] `[Go`/p] `[`/p`a|b=1|*] `!`[Bold`/b]x`!y",
		"`[a`b`c`d]",
		"`<16|user`anon> `<!pw`> `<?|agree|yes|*`I agree> `<^|c|`Red> `<^|c|b|*`Blue>",
		"`<x|a|b`d> `<|?odd`>",
		"`{/api} `{/api`30} `{/api`30`} `{/api`x`a|b}",
		"`=\n`!literal `[x]\n\\`=\n`=\nafter",
		">Heading with `Ff00color\n>>a\\`\\<b",
		"`[oops\nx`<y",
		"a\r`=",
		">head\r`=\nnext",
		"`!bold\r`=\r\nplain",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			first := Parse(src)
			out := Serialize(first)
			second := Parse(out)
			if !reflect.DeepEqual(first, second) {
				t.Fatalf("round trip changed document\nsource: %q\nserialized: %q", src, out)
			}
		})
	}
}

func TestSerializeBuiltDocument(t *testing.T) {
	doc := document.NewBuilder().
		Line(document.Heading(2).Text("Title")).
		Line(document.NewLine().Bold("hi").Text(" there")).
		Line(document.Divider('─')).
		Line(document.Divider('=')).
		Line(document.NewLine().Link("Home", "/index.mu")).
		Line(document.NewLine().Checkbox("agree", "I agree", true)).
		Document()
	want := ">>Title\n<`!hi`! there\n-\n-=\n`[Home`/index.mu]\n`<?|agree||*`I agree>"
	if got := Serialize(doc); got != want {
		t.Fatalf("Serialize = %q, want %q", got, want)
	}
}

func TestSerializeEscapesText(t *testing.T) {
	doc := document.NewBuilder().Line(document.NewLine().Text("a\\b`c")).Document()
	out := Serialize(doc)
	if out != "a\\\\b\\`c" {
		t.Fatalf("Serialize = %q", out)
	}
	back := Parse(out)
	if got := back.Lines[0].PlainText(); got != "a\\b`c" {
		t.Fatalf("reparsed text = %q, want %q", got, "a\\b`c")
	}
}

func TestSerializeTrailingEmptyLine(t *testing.T) {
	doc := document.NewBuilder().Line(document.NewLine()).Document()
	if got := len(Parse(Serialize(doc)).Lines); got != 1 {
		t.Fatalf("lines after round trip = %d, want 1", got)
	}
}

func TestEncodeColor(t *testing.T) {
	cases := []struct {
		c    document.Color
		want string
	}{
		{document.Color{R: 255}, "f00"},
		{document.Color{R: 0x77, G: 0x77, B: 0x77}, "777"},
		{document.Color{R: 128, G: 128, B: 128}, "g50"},
		{document.Color{R: 0x12, G: 0x34, B: 0x56}, "135"},
	}
	for _, tc := range cases {
		if got := encodeColor(tc.c); got != tc.want {
			t.Fatalf("encodeColor(%+v) = %q, want %q", tc.c, got, tc.want)
		}
	}
}
