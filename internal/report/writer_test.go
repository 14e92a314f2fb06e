package report

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type sample struct {
	Address string   `json:"address"`
	Balance float64  `json:"balance"`
	Tags    []string `json:"tags"`
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "analysis.json")

	in := sample{Address: "0xabc", Balance: 123.45, Tags: []string{"Current Holder"}}
	if err := WriteJSON(path, in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out sample
	found, err := ReadJSON(path, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatalf("report not found after write")
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch: %+v != %+v", out, in)
	}
}

func TestWriteLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.json")

	if err := WriteJSON(path, sample{Address: "0xabc"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}

func TestReadMissingFile(t *testing.T) {
	var out sample
	found, err := ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("missing file reported as found")
	}
}

func TestWriteOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis.json")

	if err := WriteJSON(path, sample{Address: "0xold"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := WriteJSON(path, sample{Address: "0xnew"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out sample
	if _, err := ReadJSON(path, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Address != "0xnew" {
		t.Fatalf("stale report content: %+v", out)
	}
}
