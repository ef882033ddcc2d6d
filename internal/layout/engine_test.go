package layout

import (
	"strings"
	"testing"

	"github.com/kobzarvs/micronaut/internal/document"
	"github.com/kobzarvs/micronaut/internal/markup"
)

func renderText(t *testing.T, src string, width int) Output[[]Row] {
	t.Helper()
	return NewEngine().Render(markup.Parse(src), width, NewFormState(), -1)
}

func rowStrings(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return out
}

func TestRenderLinkFitsExactly(t *testing.T) {
	out := renderText(t, "12345`[ABCDE`http://x]", 10)
	if out.Height != 1 {
		t.Fatalf("Height = %d, want 1", out.Height)
	}
	if len(out.Hitboxes) != 1 {
		t.Fatalf("hitboxes = %d, want 1", len(out.Hitboxes))
	}
	hb := out.Hitboxes[0]
	if hb.Row != 0 || hb.ColStart != 5 || hb.ColEnd != 10 || hb.Index != 0 {
		t.Fatalf("hitbox = %+v, want row 0 [5,10) index 0", hb)
	}
	if target, ok := hb.Target.(LinkTarget); !ok || target.URL != "http://x" {
		t.Fatalf("target = %#v, want link to http://x", hb.Target)
	}
}

func TestRenderLinkWraps(t *testing.T) {
	out := renderText(t, "12345`[ABCDEF`http://x]", 10)
	if out.Height != 2 {
		t.Fatalf("Height = %d, want 2", out.Height)
	}
	if len(out.Hitboxes) != 2 {
		t.Fatalf("hitboxes = %d, want 2", len(out.Hitboxes))
	}
	first, second := out.Hitboxes[0], out.Hitboxes[1]
	if first.Row != 0 || first.ColStart != 5 || first.ColEnd != 10 {
		t.Fatalf("first = %+v, want row 0 [5,10)", first)
	}
	if second.Row != 1 || second.ColStart != 0 || second.ColEnd != 1 {
		t.Fatalf("second = %+v, want row 1 [0,1)", second)
	}
	if first.Index != second.Index {
		t.Fatalf("fragments have indexes %d and %d, want equal", first.Index, second.Index)
	}
	got := rowStrings(out.Content)
	if got[0] != "12345ABCDE" || got[1] != "F" {
		t.Fatalf("rows = %q", got)
	}
}

func TestRenderHitboxColumnsAndRows(t *testing.T) {
	out := renderText(t, "Hello `[Link`http://x]\n# hidden\nSome text `[Click here now`http://y]", 20)
	if out.Height != 3 {
		t.Fatalf("Height = %d, want 3", out.Height)
	}
	hb := out.Hitboxes[0]
	if hb.Row != 0 || hb.ColStart != 6 || hb.ColEnd != 10 {
		t.Fatalf("first link = %+v", hb)
	}
	if len(out.Hitboxes) != 3 {
		t.Fatalf("hitboxes = %d, want 3", len(out.Hitboxes))
	}
	if out.Hitboxes[1].Row != 1 || out.Hitboxes[1].ColStart != 10 {
		t.Fatalf("wrapped head = %+v", out.Hitboxes[1])
	}
	if out.Hitboxes[2].Row != 2 || out.Hitboxes[2].ColStart != 0 || out.Hitboxes[2].Index != 1 {
		t.Fatalf("wrapped tail = %+v", out.Hitboxes[2])
	}
}

func TestRenderIndentation(t *testing.T) {
	out := renderText(t, ">>Sub\nbody `[x`/x]\n-=", 12)
	got := rowStrings(out.Content)
	if got[1] != "  body x" {
		t.Fatalf("body row = %q, want %q", got[1], "  body x")
	}
	if out.Hitboxes[0].ColStart != 7 {
		t.Fatalf("ColStart = %d, want 7", out.Hitboxes[0].ColStart)
	}
	if got[2] != "  ==========" {
		t.Fatalf("divider = %q", got[2])
	}
}

func TestRenderWrappedRowsKeepIndent(t *testing.T) {
	out := renderText(t, ">>H\nabcdefgh", 6)
	got := rowStrings(out.Content)
	want := []string{"  H   ", "  abcd", "  efgh"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("rows = %q, want %q", got, want)
	}
}

func TestRenderHeading(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{">Title", "Title     "},
		{"`r\n>Title", "     Title"},
		{"`c\n>Title", "  Title   "},
		{">A very long heading", "A very long heading"},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			rows := rowStrings(renderText(t, tc.src, 10).Content)
			if got := rows[len(rows)-1]; got != tc.want {
				t.Fatalf("heading = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderHeadingColours(t *testing.T) {
	out := renderText(t, ">One\n>>Two\n>>>Three", 20)
	theme := DefaultTheme()
	for i, row := range out.Content {
		span := row[len(row)-1]
		if *span.Style.Fg != theme.Headings[i].Fg || *span.Style.Bg != theme.Headings[i].Bg {
			t.Fatalf("level %d colours = %+v/%+v", i+1, *span.Style.Fg, *span.Style.Bg)
		}
	}
	if len(out.Hitboxes) != 0 {
		t.Fatalf("headings produced hitboxes")
	}
}

func TestRenderZeroWidth(t *testing.T) {
	out := renderText(t, "text `[a`/a]\nmore `[b`/b]", 0)
	if out.Height != 2 {
		t.Fatalf("Height = %d, want 2", out.Height)
	}
	for _, r := range out.Content {
		if r.String() != "" {
			t.Fatalf("row = %q, want empty", r.String())
		}
	}
	if len(out.Hitboxes) != 0 {
		t.Fatalf("hitboxes = %d, want 0", len(out.Hitboxes))
	}
}

func TestRenderEmptyLine(t *testing.T) {
	out := renderText(t, "a\n\nb", 10)
	if out.Height != 3 {
		t.Fatalf("Height = %d, want 3", out.Height)
	}
}

func TestRenderFields(t *testing.T) {
	doc := markup.Parse("`<5|name`abcdefgh> `<!4|pw`secret> `<?|c|v`L> `<^|r|a`A> `<^|r|b|*`B>")
	form := NewFormState()
	out := NewEngine().Render(doc, 80, form, -1)
	want := "abcde **** [ ] ( ) (X)"
	if got := out.Content[0].String(); got != want {
		t.Fatalf("row = %q, want %q", got, want)
	}

	form.Fields["name"] = "hi"
	form.Checkboxes["c"] = true
	form.Radios["r"] = "a"
	out = NewEngine().Render(doc, 80, form, -1)
	want = "hi    **** [X] (X) ( )"
	if got := out.Content[0].String(); got != want {
		t.Fatalf("row = %q, want %q", got, want)
	}
	if len(out.Hitboxes) != 5 {
		t.Fatalf("hitboxes = %d, want 5", len(out.Hitboxes))
	}
	for i, hb := range out.Hitboxes {
		if hb.Index != i {
			t.Fatalf("hitbox %d index = %d", i, hb.Index)
		}
	}
}

func TestRenderDefaultFieldWidth(t *testing.T) {
	out := renderText(t, "`<name`>", 80)
	if got := out.Content[0].Width(); got != DefaultFieldWidth {
		t.Fatalf("field width = %d, want %d", got, DefaultFieldWidth)
	}
	e := NewEngine()
	e.DefaultFieldWidth = 8
	out = e.Render(markup.Parse("`<name`>"), 80, nil, -1)
	if got := out.Content[0].Width(); got != 8 {
		t.Fatalf("field width = %d, want 8", got)
	}
}

func TestRenderSelectionReverses(t *testing.T) {
	doc := markup.Parse("`[a`/a] `[b`/b]")
	out := NewEngine().Render(doc, 80, nil, 1)
	var reversed []string
	for _, s := range out.Content[0] {
		if s.Style.Reverse {
			reversed = append(reversed, s.Text)
		}
		if s.Text == "a" && !s.Style.Underline {
			t.Fatalf("link not underlined")
		}
	}
	if len(reversed) != 1 || reversed[0] != "b" {
		t.Fatalf("reversed spans = %q, want [b]", reversed)
	}
}

func TestRenderEditingFieldUnderlined(t *testing.T) {
	form := NewFormState()
	form.Editing = "name"
	out := NewEngine().Render(markup.Parse("`<4|name`>"), 80, form, -1)
	if !out.Content[0][0].Style.Underline {
		t.Fatalf("editing field not underlined")
	}
}

func TestRenderPartialPlaceholder(t *testing.T) {
	out := renderText(t, "`{/feed`30}", 80)
	if got := out.Content[0].String(); got != "[partial:/feed]" {
		t.Fatalf("row = %q", got)
	}
	if len(out.Hitboxes) != 0 {
		t.Fatalf("partial produced a hitbox")
	}
}

func TestRenderIndicesSkipPassiveElements(t *testing.T) {
	out := renderText(t, "`{/feed} x `[A`/a] y `<f`v> `{/more}", 80)
	if len(out.Hitboxes) != 2 {
		t.Fatalf("hitboxes = %d, want 2", len(out.Hitboxes))
	}
	for i, hb := range out.Hitboxes {
		if hb.Index != i {
			t.Fatalf("hitbox %d index = %d, want %d", i, hb.Index, i)
		}
	}
}

func TestRenderWideRunes(t *testing.T) {
	out := renderText(t, "ab`[中文字`/x]", 5)
	got := rowStrings(out.Content)
	if len(got) != 2 || got[0] != "ab中" || got[1] != "文字" {
		t.Fatalf("rows = %q", got)
	}
	if hb := out.Hitboxes[0]; hb.ColStart != 2 || hb.ColEnd != 4 {
		t.Fatalf("first fragment = %+v, want [2,4)", hb)
	}
	if hb := out.Hitboxes[1]; hb.Row != 1 || hb.ColEnd != 4 {
		t.Fatalf("second fragment = %+v", hb)
	}
}

func TestRenderBuiltDocument(t *testing.T) {
	doc := document.NewBuilder().
		Line(document.NewLine().Text("go ").Link("", "/home")).
		Document()
	out := NewEngine().Render(doc, 40, nil, -1)
	if got := out.Content[0].String(); got != "go /home" {
		t.Fatalf("row = %q", got)
	}
}
