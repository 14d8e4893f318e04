package index

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
)

func mustNew(t *testing.T, docID, text string) *Index {
	t.Helper()
	ix, err := New(docID, text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return ix
}

func TestOutline_RenderingAndIndentation(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)

	want := strings.Join([]string{
		"[1] Introduction",
		"  [1.1] Background",
		"  [1.2] Goals",
		"[2] Methods",
		"  [2.1] Experiment",
	}, "\n")
	if got := ix.Outline(); got != want {
		t.Errorf("outline mismatch:\nexpected:\n%s\ngot:\n%s", want, got)
	}
}

func TestOutline_ParentPrecedesDescendants(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)
	lines := strings.Split(ix.Outline(), "\n")
	if len(lines) != ix.Len() {
		t.Fatalf("expected %d outline lines, got %d", ix.Len(), len(lines))
	}

	seen := map[string]int{}
	for i, line := range lines {
		start := strings.Index(line, "[")
		end := strings.Index(line, "]")
		if start < 0 || end < start {
			t.Fatalf("malformed outline line %q", line)
		}
		seen[line[start+1:end]] = i
	}
	for id, pos := range seen {
		if parent := parentID(id); parent != "" {
			ppos, ok := seen[parent]
			if !ok {
				t.Errorf("parent %q of %q missing from outline", parent, id)
			} else if ppos > pos {
				t.Errorf("parent %q rendered after child %q", parent, id)
			}
		}
	}
}

func TestOutline_EmptyIndex(t *testing.T) {
	ix := mustNew(t, "doc1", "no headings here")
	if out := ix.Outline(); out != "" {
		t.Errorf("expected empty outline, got %q", out)
	}
}

func TestNodeIDs_MatchesLookupKeys(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)

	ids := ix.NodeIDs()
	if len(ids) != len(ix.byID) {
		t.Fatalf("expected %d ids, got %d", len(ix.byID), len(ids))
	}
	dup := map[string]bool{}
	for _, id := range ids {
		if dup[id] {
			t.Errorf("duplicate id %q", id)
		}
		dup[id] = true
		if _, ok := ix.byID[id]; !ok {
			t.Errorf("id %q not in lookup map", id)
		}
	}
}

func TestNodeIDs_Restartable(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)
	if !reflect.DeepEqual(ix.NodeIDs(), ix.NodeIDs()) {
		t.Error("expected identical ids across traversals")
	}
}

func TestGetNode_Breadcrumb(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)

	n, err := ix.GetNode("2.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Methods", "Experiment"}
	if !reflect.DeepEqual(n.Breadcrumb, want) {
		t.Errorf("expected breadcrumb %v, got %v", want, n.Breadcrumb)
	}

	top, err := ix.GetNode("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(top.Breadcrumb, []string{"Introduction"}) {
		t.Errorf("expected single-element breadcrumb, got %v", top.Breadcrumb)
	}
}

func TestGetNode_NotFoundCarriesID(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)

	_, err := ix.GetNode("9.9")
	if !IsNotFound(err) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "9.9" {
		t.Errorf("expected offending id in error, got %v", err)
	}
	if !strings.Contains(err.Error(), "9.9") {
		t.Errorf("expected id in message, got %q", err.Error())
	}
}

func TestGetChildren(t *testing.T) {
	ix := mustNew(t, "doc1", "# A\ntext1\n## B\ntext2\n## C\ntext3")

	children, err := ix.GetChildren("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []NodeRef{{ID: "1.1", Title: "B"}, {ID: "1.2", Title: "C"}}
	if !reflect.DeepEqual(children, want) {
		t.Errorf("expected %v, got %v", want, children)
	}
}

func TestGetChildren_LeafReturnsEmpty(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)
	children, err := ix.GetChildren("1.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(children) != 0 {
		t.Errorf("expected no children for a leaf, got %v", children)
	}
}

func TestGetChildren_NotFound(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)
	if _, err := ix.GetChildren("7"); !IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestGetNodeWithChildren_MergesSubtreeText(t *testing.T) {
	ix := mustNew(t, "doc1", "# A\ntext1\n## B\ntext2\n## C\ntext3")

	n, err := ix.GetNodeWithChildren("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Text != "text1\n\ntext2\n\ntext3" {
		t.Errorf("expected merged subtree text, got %q", n.Text)
	}
	if n.Title != "A" || n.Depth != 1 {
		t.Errorf("expected target node's title/depth, got %q/%d", n.Title, n.Depth)
	}
	if !reflect.DeepEqual(n.Breadcrumb, []string{"A"}) {
		t.Errorf("expected target node's breadcrumb, got %v", n.Breadcrumb)
	}
}

func TestGetNodeWithChildren_SkipsEmptyBodies(t *testing.T) {
	ix := mustNew(t, "doc1", "# A\n## B\nonly text")

	n, err := ix.GetNodeWithChildren("1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Text != "only text" {
		t.Errorf("expected empty bodies skipped, got %q", n.Text)
	}
}

func TestGetNodeWithChildren_LeafEqualsGetNode(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)

	leaf, err := ix.GetNode("1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	merged, err := ix.GetNodeWithChildren("1.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.Text != leaf.Text {
		t.Errorf("leaf subtree text %q != node text %q", merged.Text, leaf.Text)
	}
}

func TestGetNodeWithChildren_NotFound(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)
	if _, err := ix.GetNodeWithChildren("nonexistent"); !IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestConcurrentReads(t *testing.T) {
	// The index never mutates after construction, so readers need no
	// synchronization. Run under the race detector.
	ix := mustNew(t, "doc1", sampleDoc)
	wantOutline := ix.Outline()
	wantIDs := ix.NodeIDs()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if got := ix.Outline(); got != wantOutline {
					t.Errorf("outline changed under concurrent reads: %q", got)
				}
				if got := ix.NodeIDs(); !reflect.DeepEqual(got, wantIDs) {
					t.Errorf("node ids changed under concurrent reads: %v", got)
				}
				for _, id := range wantIDs {
					if _, err := ix.GetNode(id); err != nil {
						t.Errorf("GetNode(%q): %v", id, err)
					}
					if _, err := ix.GetNodeWithChildren(id); err != nil {
						t.Errorf("GetNodeWithChildren(%q): %v", id, err)
					}
					if _, err := ix.GetChildren(id); err != nil {
						t.Errorf("GetChildren(%q): %v", id, err)
					}
				}
			}
		}()
	}
	wg.Wait()
}
