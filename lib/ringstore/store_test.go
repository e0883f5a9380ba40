// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ringstore

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/ringbuffer/lib/codec"
	"github.com/bureau-foundation/ringbuffer/lib/ring"
	"github.com/bureau-foundation/ringbuffer/lib/testutil"
)

func openStore(t *testing.T, compression CompressionTag) *Store {
	t.Helper()
	store, err := Open(t.TempDir(), Options{Compression: compression})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return store
}

func TestValidateName(t *testing.T) {
	valid := []string{"a", "window-1", "sensor.temps", "A_b-c.d", strings.Repeat("x", 128)}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", ".hidden", "-flag", "a/b", "a..b", "with space", strings.Repeat("x", 129)}
	for _, name := range invalid {
		if err := ValidateName(name); !errors.Is(err, ErrInvalidName) {
			t.Errorf("ValidateName(%q) = %v, want ErrInvalidName", name, err)
		}
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	directory := filepath.Join(t.TempDir(), "nested", "store")
	store, err := Open(directory, Options{})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if store.Directory() != directory {
		t.Errorf("Directory() = %q, want %q", store.Directory(), directory)
	}
	if _, err := os.Stat(directory); err != nil {
		t.Errorf("Open did not create the directory: %v", err)
	}

	if _, err := Open("", Options{}); err == nil {
		t.Error("Open with empty directory should fail")
	}
	if _, err := Open(t.TempDir(), Options{Compression: CompressionTag(7)}); err == nil {
		t.Error("Open with unknown compression should fail")
	}
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("0123456789"), 100)
	for _, compression := range []CompressionTag{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			store := openStore(t, compression)
			name := testutil.UniqueName("payload")

			saved, err := store.Save(name, payload)
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			if saved.Compression != compression {
				t.Errorf("saved compression = %v, want %v", saved.Compression, compression)
			}
			if saved.Size != len(payload) {
				t.Errorf("saved size = %d, want %d", saved.Size, len(payload))
			}
			if saved.Digest != DigestPayload(payload) {
				t.Error("saved digest does not match payload")
			}

			loaded, info, err := store.Load(name)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !bytes.Equal(loaded, payload) {
				t.Error("Load returned different bytes")
			}
			if info != saved {
				t.Errorf("Load info = %+v, want %+v", info, saved)
			}

			status, err := os.Stat(filepath.Join(store.Directory(), name+Extension))
			if err != nil {
				t.Fatalf("snapshot file missing: %v", err)
			}
			if status.Size() != saved.StoredSize {
				t.Errorf("file size = %d, StoredSize = %d", status.Size(), saved.StoredSize)
			}
		})
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	t.Parallel()
	store := openStore(t, CompressionNone)

	if _, err := store.Save("window", []byte("first")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := store.Save("window", []byte("second")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, _, err := store.Load("window")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(loaded) != "second" {
		t.Errorf("Load = %q, want %q", loaded, "second")
	}

	entries, err := os.ReadDir(store.Directory())
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Errorf("temporary file %s left behind", entry.Name())
		}
	}
}

func TestLoadNotFound(t *testing.T) {
	t.Parallel()
	store := openStore(t, CompressionNone)

	_, _, err := store.Load("missing")
	testutil.RequireErrorIs(t, err, ErrNotFound, "Load")
	_, err = store.Stat("missing")
	testutil.RequireErrorIs(t, err, ErrNotFound, "Stat")
	testutil.RequireErrorIs(t, store.Delete("missing"), ErrNotFound, "Delete")
}

func TestInvalidNameRejected(t *testing.T) {
	t.Parallel()
	store := openStore(t, CompressionNone)

	_, err := store.Save("../escape", []byte("x"))
	testutil.RequireErrorIs(t, err, ErrInvalidName, "Save")
	_, _, err = store.Load("../escape")
	testutil.RequireErrorIs(t, err, ErrInvalidName, "Load")
	_, err = store.Stat("a/b")
	testutil.RequireErrorIs(t, err, ErrInvalidName, "Stat")
	testutil.RequireErrorIs(t, store.Delete(""), ErrInvalidName, "Delete")
}

func TestLoadDetectsCorruption(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte("abc"), 50)
	tests := []struct {
		name   string
		mutate func(data []byte) []byte
	}{
		{"payload bit flip", func(data []byte) []byte {
			data[len(data)-1] ^= 0x01
			return data
		}},
		{"digest bit flip", func(data []byte) []byte {
			data[10] ^= 0x80
			return data
		}},
		{"truncated payload", func(data []byte) []byte {
			return data[:len(data)-5]
		}},
		{"truncated header", func(data []byte) []byte {
			return data[:20]
		}},
		{"bad magic", func(data []byte) []byte {
			copy(data, "GNIR")
			return data
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openStore(t, CompressionNone)
			if _, err := store.Save("target", payload); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			path := filepath.Join(store.Directory(), "target"+Extension)
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, tt.mutate(data), 0o644); err != nil {
				t.Fatal(err)
			}

			_, _, err = store.Load("target")
			testutil.RequireErrorIs(t, err, ErrCorrupt, "Load after %s", tt.name)
		})
	}
}

func TestConcurrentSaves(t *testing.T) {
	t.Parallel()
	directory := t.TempDir()

	// Two stores on one directory stand in for two processes.
	first, err := Open(directory, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Open(directory, Options{Compression: CompressionZstd})
	if err != nil {
		t.Fatal(err)
	}

	var group sync.WaitGroup
	for index := range 20 {
		store := first
		if index%2 == 1 {
			store = second
		}
		group.Go(func() {
			payload := bytes.Repeat([]byte{byte(index)}, 256)
			if _, err := store.Save("shared", payload); err != nil {
				t.Errorf("Save %d failed: %v", index, err)
			}
		})
	}
	group.Wait()

	payload, _, err := first.Load("shared")
	if err != nil {
		t.Fatalf("Load after concurrent saves failed: %v", err)
	}
	if len(payload) != 256 || bytes.Count(payload, payload[:1]) != 256 {
		t.Error("concurrent saves produced a mixed payload")
	}
}

func TestListAndDelete(t *testing.T) {
	t.Parallel()
	store := openStore(t, CompressionLZ4)

	for _, name := range []string{"gamma", "alpha", "beta"} {
		if _, err := store.Save(name, []byte(name)); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
	}
	// Unrelated and unreadable files are skipped.
	os.WriteFile(filepath.Join(store.Directory(), "notes.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(store.Directory(), "broken"+Extension), []byte("x"), 0o644)

	infos, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var names []string
	for _, info := range infos {
		names = append(names, info.Name)
		if info.Digest != DigestPayload([]byte(info.Name)) {
			t.Errorf("List digest for %s does not match", info.Name)
		}
	}
	testutil.RequireElements(t, names, []string{"alpha", "beta", "gamma"}, "List names")

	if err := store.Delete("beta"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	infos, err = store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if slices.ContainsFunc(infos, func(info Info) bool { return info.Name == "beta" }) {
		t.Error("deleted snapshot still listed")
	}
}

func TestSaveLoadBuffer(t *testing.T) {
	t.Parallel()
	store := openStore(t, CompressionZstd)

	buffer, err := ring.New[string](3)
	if err != nil {
		t.Fatal(err)
	}
	buffer.Append("a", "b", "c", "d", "e")

	name := testutil.UniqueName("strings")
	if _, err := SaveBuffer(store, name, buffer); err != nil {
		t.Fatalf("SaveBuffer failed: %v", err)
	}
	restored, info, err := LoadBuffer[string](store, name)
	if err != nil {
		t.Fatalf("LoadBuffer failed: %v", err)
	}
	if info.Name != name {
		t.Errorf("info name = %q, want %q", info.Name, name)
	}
	if restored.Cap() != 3 {
		t.Errorf("restored Cap() = %d, want 3", restored.Cap())
	}
	testutil.RequireElements(t, restored.Elements(), []string{"c", "d", "e"}, "restored elements")
}

func TestLoadBufferTypeMismatch(t *testing.T) {
	t.Parallel()
	store := openStore(t, CompressionNone)

	buffer := ring.Of("x", "y")
	if _, err := SaveBuffer(store, "text", buffer); err != nil {
		t.Fatalf("SaveBuffer failed: %v", err)
	}
	if _, _, err := LoadBuffer[int64](store, "text"); err == nil {
		t.Error("LoadBuffer[int64] of a string snapshot should fail")
	}
}

func TestLoadBufferRejectsOversizedCapacity(t *testing.T) {
	t.Parallel()
	store := openStore(t, CompressionLZ4)

	// A well-formed file with a valid digest whose payload claims a
	// capacity the loader must not allocate.
	payload, err := codec.Marshal(ring.Snapshot[int64]{Capacity: 1 << 40, Elements: []int64{1}})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if _, err := store.Save("huge", payload); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	_, _, err = LoadBuffer[int64](store, "huge")
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("LoadBuffer error = %v, want ErrCorrupt", err)
	}
	if !errors.Is(err, codec.ErrSnapshotTooLarge) {
		t.Errorf("LoadBuffer error = %v, want ErrSnapshotTooLarge in chain", err)
	}
}
