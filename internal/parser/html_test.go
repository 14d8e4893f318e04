package parser

import (
	"reflect"
	"strings"
	"testing"
)

func TestHTMLParser_HeadingTags(t *testing.T) {
	input := `<html><head><title>Doc</title></head><body>
<h1>Overview</h1>
<p>Overview text.</p>
<h2>Details</h2>
<p>Detail text.</p>
<h1>Appendix</h1>
<p>Appendix text.</p>
</body></html>`

	p := &HTMLParser{}
	ix, err := p.Parse(strings.NewReader(input), "doc1", "doc.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"1", "1.1", "2"}
	if got := ix.NodeIDs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
	if ix.Title() != "Overview" {
		t.Errorf("expected title %q, got %q", "Overview", ix.Title())
	}

	n, err := ix.GetNode("1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Title != "Details" || n.Text != "Detail text." {
		t.Errorf("unexpected node: %+v", n)
	}
}

func TestHTMLParser_SkipsScriptAndNav(t *testing.T) {
	input := `<body><h1>A</h1><script>var x = 1;</script><nav>menu</nav><p>real text</p></body>`

	p := &HTMLParser{}
	ix, err := p.Parse(strings.NewReader(input), "doc1", "doc.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, err := ix.GetNode("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(n.Text, "var x") || strings.Contains(n.Text, "menu") {
		t.Errorf("expected script/nav content skipped, got %q", n.Text)
	}
	if n.Text != "real text" {
		t.Errorf("expected %q, got %q", "real text", n.Text)
	}
}

func TestHTMLParser_NoHeadingsFallsBackToTitleTag(t *testing.T) {
	input := `<html><head><title>Fallback Title</title></head><body><p>Just text.</p></body></html>`

	p := &HTMLParser{}
	ix, err := p.Parse(strings.NewReader(input), "doc1", "doc.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ix.Len() != 1 {
		t.Fatalf("expected 1 node, got %d", ix.Len())
	}
	n, _ := ix.GetNode("1")
	if n.Title != "Fallback Title" {
		t.Errorf("expected title from <title>, got %q", n.Title)
	}
	if n.Text != "Just text." {
		t.Errorf("expected body text, got %q", n.Text)
	}
}
