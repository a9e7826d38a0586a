package trail

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

func TestTrail_EncodeLayout(t *testing.T) {
	tr := Trail{{1, 0, -2}}

	expected := []byte{
		0x00, 0x00, 0x80, 0x3f,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0xc0,
	}
	if got := tr.Encode(); !bytes.Equal(got, expected) {
		t.Errorf("Encode() = % x, want % x", got, expected)
	}
}

func TestDecode(t *testing.T) {
	tr := Trail{{1, 2, 3}, {-0.5, 0.25, 1e6}}
	data := tr.Encode()

	tests := []struct {
		name     string
		data     []byte
		expected Trail
	}{
		{"empty", nil, Trail{}},
		{"whole records", data, tr},
		{"trailing partial record", append(append([]byte{}, data...), 0x01, 0x02), tr},
		{"single partial record", data[:7], Trail{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.data)
			if len(got) != len(tt.expected) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("sample %d = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestSample(t *testing.T) {
	got := Sample(mgl64.Vec3{1.5, -2, 0.1})
	if got != (mgl32.Vec3{1.5, -2, 0.1}) {
		t.Errorf("Sample() = %v", got)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name   string
		record string
		target error
	}{
		{"plain", "level1.rec", nil},
		{"63 characters", strings.Repeat("a", 63), nil},
		{"64 characters", strings.Repeat("a", 64), ErrNameTooLong},
		{"empty", "", ErrInvalidName},
		{"path separator", "../escape", ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateName(tt.record); !errors.Is(err, tt.target) {
				t.Errorf("ValidateName(%q) = %v, want %v", tt.record, err, tt.target)
			}
		})
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())

	tr, err := store.Load("nothing.rec")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if tr == nil || len(tr) != 0 {
		t.Errorf("Load() = %v, want an empty trail", tr)
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "records")
	store := NewFileStore(dir)

	first := Trail{{0, 0.4, 0}, {0.1, 0.4, 0}}
	if err := store.Save("run.rec", first); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	second := Trail{{0, 0.4, 0}}
	if err := store.Save("run.rec", second); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "run.rec"))
	if err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
	if info.Size() != RecordSize {
		t.Errorf("file size = %d, want %d", info.Size(), RecordSize)
	}

	loaded, err := store.Load("run.rec")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(loaded) != 1 || loaded[0] != second[0] {
		t.Errorf("Load() = %v, want %v", loaded, second)
	}

	// No temporary file is left behind
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("records dir holds %d entries, want 1", len(entries))
	}
}

func TestFileStore_SaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// Dir is a regular file, so nothing can be created inside it
	store := NewFileStore(blocker)
	if err := store.Save("run.rec", Trail{{1, 2, 3}}); err == nil {
		t.Error("Save() should fail")
	}
}
