package effects_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/roadrover/ivi-audio/internal/effects"
)

type added struct {
	effect int
	path   string
	apply  bool
}

type fakeTarget struct {
	mu        sync.Mutex
	available []int
	added     []added
}

func (f *fakeTarget) AvailableExpertAudioEffects() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int{}, f.available...)
}

func (f *fakeTarget) AddExpertAudioEffect(effect int, path string, apply bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, added{effect, path, apply})
}

func (f *fakeTarget) snapshot() []added {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]added(nil), f.added...)
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("profile"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestParseName(t *testing.T) {
	tests := []struct {
		name string
		id   int
		ok   bool
	}{
		{"2.bin", 2, true},
		{"12-concert-hall.bin", 12, true},
		{"/data/effects/3-live", 3, true},
		{"7", 7, true},
		{"hall.bin", 0, false},
		{".4.bin", 0, false},
		{"-1.bin", 0, false},
		{"x-2.bin", 0, false},
	}
	for _, tc := range tests {
		id, ok := effects.ParseName(tc.name)
		if ok != tc.ok || id != tc.id {
			t.Errorf("ParseName(%q) = %d, %v; want %d, %v", tc.name, id, ok, tc.id, tc.ok)
		}
	}
}

func TestRescanRegistersAdvertisedEffects(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "1-hall.bin"))
	writeFile(t, filepath.Join(dir, "1-studio.bin"))
	writeFile(t, filepath.Join(dir, "2.bin"))
	writeFile(t, filepath.Join(dir, "9.bin"))
	writeFile(t, filepath.Join(dir, "readme.txt"))

	target := &fakeTarget{available: []int{1, 2, 3}}
	w, err := effects.New(dir, target, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	n, err := w.Rescan()
	if err != nil {
		t.Fatalf("Rescan: %v", err)
	}
	if n != 2 {
		t.Errorf("registered %d profiles, want 2", n)
	}

	got := target.snapshot()
	want := []added{
		{1, filepath.Join(dir, "1-hall.bin"), false},
		{2, filepath.Join(dir, "2.bin"), false},
	}
	if len(got) != len(want) {
		t.Fatalf("added = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("added[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if p := w.Profiles(); len(p) != 3 {
		t.Errorf("Profiles = %v, want 3 entries", p)
	}
}

func TestRescanMissingDir(t *testing.T) {
	target := &fakeTarget{available: []int{1}}
	w, err := effects.New(filepath.Join(t.TempDir(), "missing"), target, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	n, err := w.Rescan()
	if err != nil || n != 0 {
		t.Errorf("Rescan = %d, %v; want 0, nil", n, err)
	}
}

func TestWatchPushesNewProfiles(t *testing.T) {
	dir := t.TempDir()
	target := &fakeTarget{available: []int{4}}
	w, err := effects.New(dir, target, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "4-night.bin")
	writeFile(t, path)
	writeFile(t, filepath.Join(dir, "5.bin")) // not offered

	deadline := time.Now().Add(2 * time.Second)
	for len(target.snapshot()) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for profile push")
		}
		time.Sleep(10 * time.Millisecond)
	}
	for _, a := range target.snapshot() {
		if a.effect != 4 || a.path != path || !a.apply {
			t.Errorf("unexpected push %v", a)
		}
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	deadline = time.Now().Add(2 * time.Second)
	for {
		if _, ok := w.Profiles()[4]; !ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("removed profile still listed")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
