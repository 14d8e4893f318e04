package index

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestJSONRoundTrip(t *testing.T) {
	orig := mustNew(t, "doc1", sampleDoc+"\n### Detail\ndeep text\n")

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.DocID() != orig.DocID() {
		t.Errorf("doc id: expected %q, got %q", orig.DocID(), back.DocID())
	}
	if back.Title() != orig.Title() {
		t.Errorf("title: expected %q, got %q", orig.Title(), back.Title())
	}
	if !reflect.DeepEqual(back.NodeIDs(), orig.NodeIDs()) {
		t.Errorf("node ids: expected %v, got %v", orig.NodeIDs(), back.NodeIDs())
	}
	for _, id := range orig.NodeIDs() {
		want, err := orig.GetNode(id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := back.GetNode(id)
		if err != nil {
			t.Fatalf("node %q lost in round trip: %v", id, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("node %q: expected %+v, got %+v", id, want, got)
		}
	}
	if back.Outline() != orig.Outline() {
		t.Errorf("outline changed across round trip")
	}
}

func TestJSONRoundTrip_EmptyIndex(t *testing.T) {
	orig := mustNew(t, "doc1", "no structure")

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Empty() {
		t.Errorf("expected empty index after round trip, got %d nodes", back.Len())
	}
}

func TestToJSON_ContainsNodeFields(t *testing.T) {
	ix := mustNew(t, "doc1", sampleDoc)

	out, err := ix.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{`"doc_id": "doc1"`, `"node_id": "1.1"`, `"Background details."`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("expected projection to contain %s, got:\n%s", want, out)
		}
	}
}

func TestFromJSON_RejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"invalid json", `{`},
		{"missing doc_id", `{"title":"x","sections":[]}`},
		{"empty node_id", `{"doc_id":"d","sections":[{"node_id":"","title":"x"}]}`},
		{"duplicate node_id", `{"doc_id":"d","sections":[{"node_id":"1"},{"node_id":"1"}]}`},
	}
	for _, tc := range cases {
		if _, err := FromJSON([]byte(tc.data)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}
