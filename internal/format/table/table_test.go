package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	got := Format([][]string{
		{"a", "1", "x"},
		{"bbb", "22", "y"},
	}, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"a     1  x",
		"bbb  22  y",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

func TestPairsRightAlignsLabels(t *testing.T) {
	got := Pairs([2]string{"Author", "Nobody#1345"}, [2]string{"Dir", "/ext"})
	if got[0] != "Author:  Nobody#1345" || got[1] != "   Dir:  /ext" {
		t.Fatalf("unexpected pairs %q", got)
	}
}
