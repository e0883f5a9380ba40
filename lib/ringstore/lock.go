// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ringstore

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// lockFileName is the advisory lock file that serializes writers
// across processes sharing a store directory.
const lockFileName = ".lock"

// lockDirectory takes an exclusive flock on the store's lock file and
// returns the function that releases it. Readers do not lock: renames
// are atomic, so a reader sees either the old or the new file.
func (store *Store) lockDirectory() (func(), error) {
	file, err := os.OpenFile(filepath.Join(store.directory, lockFileName), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening store lock: %w", err)
	}
	fd := int(file.Fd())
	for {
		err = unix.Flock(fd, unix.LOCK_EX)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("locking store: %w", err)
	}
	return func() {
		unix.Flock(fd, unix.LOCK_UN)
		file.Close()
	}, nil
}
