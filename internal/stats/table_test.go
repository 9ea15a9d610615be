package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"User Type", "Count"}
	rows := [][]string{
		{"Subscriber", "1200"},
		{"Customer", "35"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "User Type   Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Subscriber   1200" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Customer       35" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Station", "N"}, [][]string{{"東京", "1"}, {"ab", "2"}}, map[int]bool{1: true})
	if lines[1] != "東京     1" {
		t.Fatalf("unexpected wide-rune row: %q", lines[1])
	}
	if lines[2] != "ab       2" {
		t.Fatalf("unexpected ascii row: %q", lines[2])
	}
}

func TestTitleCaseMultiByte(t *testing.T) {
	tests := map[string]string{
		"new york city":  "New York City",
		"östersund city": "Östersund City",
	}
	for in, want := range tests {
		if got := titleCase(in); got != want {
			t.Fatalf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
