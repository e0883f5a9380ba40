// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ringstore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/bureau-foundation/ringbuffer/lib/codec"
	"github.com/bureau-foundation/ringbuffer/lib/ring"
)

// Extension is the file name suffix of stored snapshots.
const Extension = ".ring"

var (
	// ErrNotFound is returned when no snapshot has the requested name.
	ErrNotFound = errors.New("ringstore: snapshot not found")

	// ErrCorrupt is returned when a snapshot file fails header or
	// digest verification.
	ErrCorrupt = errors.New("ringstore: snapshot corrupt")

	// ErrInvalidName is returned for names that are empty, too long,
	// or contain characters other than letters, digits, '.', '_' and
	// '-'.
	ErrInvalidName = errors.New("ringstore: invalid snapshot name")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidateName reports whether name can be used as a snapshot name.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) || strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Options configures a Store.
type Options struct {
	// Compression is applied to new snapshots. Payloads that do not
	// shrink are stored uncompressed regardless.
	Compression CompressionTag

	// Logger receives debug records for saves and loads and warnings
	// for corrupt files. Nil discards them.
	Logger *slog.Logger
}

// Info describes a stored snapshot.
type Info struct {
	Name        string         `json:"name"`
	Digest      Digest         `json:"digest"`
	Compression CompressionTag `json:"compression"`
	// Size is the length of the encoded CBOR payload.
	Size int `json:"size"`
	// StoredSize is the length of the file on disk, header included.
	StoredSize int64 `json:"stored_size"`
}

// Store is a directory of snapshot files.
type Store struct {
	directory   string
	compression CompressionTag
	logger      *slog.Logger

	writeMutex sync.Mutex
}

// Open returns a Store rooted at directory, creating it if needed.
func Open(directory string, options Options) (*Store, error) {
	if directory == "" {
		return nil, errors.New("ringstore: directory is required")
	}
	switch options.Compression {
	case CompressionNone, CompressionLZ4, CompressionZstd:
	default:
		return nil, fmt.Errorf("ringstore: unsupported compression tag: %d", options.Compression)
	}
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		directory:   directory,
		compression: options.Compression,
		logger:      logger,
	}, nil
}

// Directory returns the root directory of the store.
func (store *Store) Directory() string { return store.directory }

func (store *Store) path(name string) string {
	return filepath.Join(store.directory, name+Extension)
}

// Save writes an encoded snapshot payload under name, replacing any
// existing snapshot of that name.
func (store *Store) Save(name string, payload []byte) (Info, error) {
	if err := ValidateName(name); err != nil {
		return Info{}, err
	}
	if err := checkPayloadSize(len(payload)); err != nil {
		return Info{}, err
	}

	stored, tag, err := compress(payload, store.compression)
	if err != nil {
		return Info{}, fmt.Errorf("compressing snapshot %s: %w", name, err)
	}
	digest := DigestPayload(payload)
	data := header{compression: tag, size: len(payload), digest: digest}.append(make([]byte, 0, headerSize+len(stored)))
	data = append(data, stored...)

	store.writeMutex.Lock()
	defer store.writeMutex.Unlock()
	unlock, err := store.lockDirectory()
	if err != nil {
		return Info{}, err
	}
	defer unlock()
	if err := writeAtomic(store.directory, store.path(name), data); err != nil {
		return Info{}, fmt.Errorf("saving snapshot %s: %w", name, err)
	}

	info := Info{Name: name, Digest: digest, Compression: tag, Size: len(payload), StoredSize: int64(len(data))}
	store.logger.Debug("saved snapshot",
		"name", name,
		"digest", digest.Short(),
		"compression", tag,
		"size", info.Size,
		"stored_size", info.StoredSize,
	)
	return info, nil
}

// Load reads and verifies the snapshot payload stored under name.
func (store *Store) Load(name string) ([]byte, Info, error) {
	if err := ValidateName(name); err != nil {
		return nil, Info{}, err
	}
	data, err := os.ReadFile(store.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, Info{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, Info{}, fmt.Errorf("reading snapshot %s: %w", name, err)
	}

	parsed, stored, err := parseHeader(data)
	if err != nil {
		store.logger.Warn("snapshot header invalid", "name", name, "error", err)
		return nil, Info{}, fmt.Errorf("loading snapshot %s: %w", name, err)
	}
	payload, err := decompress(stored, parsed.compression, parsed.size)
	if err != nil {
		store.logger.Warn("snapshot payload invalid", "name", name, "error", err)
		return nil, Info{}, fmt.Errorf("loading snapshot %s: %w: %w", name, ErrCorrupt, err)
	}
	if digest := DigestPayload(payload); digest != parsed.digest {
		store.logger.Warn("snapshot digest mismatch", "name", name, "want", parsed.digest.Short(), "got", digest.Short())
		return nil, Info{}, fmt.Errorf("loading snapshot %s: %w: digest mismatch", name, ErrCorrupt)
	}

	info := Info{
		Name:        name,
		Digest:      parsed.digest,
		Compression: parsed.compression,
		Size:        parsed.size,
		StoredSize:  int64(len(data)),
	}
	store.logger.Debug("loaded snapshot", "name", name, "digest", parsed.digest.Short())
	return payload, info, nil
}

// Stat reads the header of the snapshot stored under name without
// decompressing or verifying its payload.
func (store *Store) Stat(name string) (Info, error) {
	if err := ValidateName(name); err != nil {
		return Info{}, err
	}
	file, err := os.Open(store.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Info{}, fmt.Errorf("opening snapshot %s: %w", name, err)
	}
	defer file.Close()

	status, err := file.Stat()
	if err != nil {
		return Info{}, fmt.Errorf("stat snapshot %s: %w", name, err)
	}
	prefix := make([]byte, headerSize)
	read, _ := io.ReadFull(file, prefix)
	parsed, _, err := parseHeader(prefix[:read])
	if err != nil {
		return Info{}, fmt.Errorf("reading snapshot %s: %w", name, err)
	}
	return Info{
		Name:        name,
		Digest:      parsed.digest,
		Compression: parsed.compression,
		Size:        parsed.size,
		StoredSize:  status.Size(),
	}, nil
}

// List returns the stored snapshots sorted by name. Files with an
// unreadable header are skipped and logged.
func (store *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(store.directory)
	if err != nil {
		return nil, fmt.Errorf("listing snapshot directory: %w", err)
	}
	var infos []Info
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), Extension)
		if !ok || entry.IsDir() || ValidateName(name) != nil {
			continue
		}
		info, err := store.Stat(name)
		if err != nil {
			store.logger.Warn("skipping unreadable snapshot", "name", name, "error", err)
			continue
		}
		infos = append(infos, info)
	}
	slices.SortFunc(infos, func(a, b Info) int { return strings.Compare(a.Name, b.Name) })
	return infos, nil
}

// Delete removes the snapshot stored under name.
func (store *Store) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	store.writeMutex.Lock()
	defer store.writeMutex.Unlock()
	unlock, err := store.lockDirectory()
	if err != nil {
		return err
	}
	defer unlock()
	if err := os.Remove(store.path(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("deleting snapshot %s: %w", name, err)
	}
	store.logger.Debug("deleted snapshot", "name", name)
	return nil
}

// SaveBuffer encodes buffer and saves it under name.
func SaveBuffer[T any](store *Store, name string, buffer *ring.Buffer[T]) (Info, error) {
	payload, err := codec.MarshalBuffer(buffer)
	if err != nil {
		return Info{}, err
	}
	return store.Save(name, payload)
}

// LoadBuffer loads the snapshot stored under name and restores it.
func LoadBuffer[T any](store *Store, name string) (*ring.Buffer[T], Info, error) {
	payload, info, err := store.Load(name)
	if err != nil {
		return nil, Info{}, err
	}
	buffer, err := codec.UnmarshalBuffer[T](payload)
	if errors.Is(err, codec.ErrSnapshotTooLarge) {
		store.logger.Warn("snapshot claims oversized capacity", "name", name, "error", err)
		return nil, Info{}, fmt.Errorf("loading snapshot %s: %w: %w", name, ErrCorrupt, err)
	}
	if err != nil {
		return nil, Info{}, fmt.Errorf("loading snapshot %s: %w", name, err)
	}
	return buffer, info, nil
}

// writeAtomic writes data to a temporary file in directory, syncs it,
// and renames it to path.
func writeAtomic(directory, path string, data []byte) error {
	file, err := os.CreateTemp(directory, ".snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	temporaryPath := file.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(temporaryPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("writing temporary file: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("syncing temporary file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing temporary file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	success = true

	if parent, err := os.Open(directory); err == nil {
		parent.Sync()
		parent.Close()
	}
	return nil
}
