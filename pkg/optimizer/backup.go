// FPSTune Core
// Copyright (c) 2026 The FPSTune Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of FPSTune Core.
//
// FPSTune Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// FPSTune Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with FPSTune Core.  If not, see <http://www.gnu.org/licenses/>.

package optimizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/FPSTuneProject/fpstune-core/pkg/platforms"
	"github.com/spf13/afero"
)

var ErrNoBackups = errors.New("no backups found")

// BackupRecord is the original value of one setting before it was
// overwritten. Existed is false when the setting had no value, in which
// case a revert deletes it instead of writing.
type BackupRecord struct {
	Key     platforms.SettingKey `json:"key"`
	Value   platforms.Value      `json:"value"`
	Existed bool                 `json:"existed"`
}

// Backup is one optimization session's worth of original values.
type Backup struct {
	Timestamp time.Time      `json:"timestamp"`
	Platform  string         `json:"platform"`
	Records   []BackupRecord `json:"records"`
}

// BackupStore persists backups as JSON files, one per session, never
// overwriting. The filesystem is injected so tests can run in memory.
type BackupStore struct {
	fs  afero.Fs
	dir string
}

func NewBackupStore(fs afero.Fs, dir string) *BackupStore {
	return &BackupStore{fs: fs, dir: dir}
}

// backupFilename embeds the full timestamp, nanoseconds included, so two
// sessions in the same second still get distinct files and lexical order
// stays chronological.
func backupFilename(ts time.Time) string {
	utc := ts.UTC()
	return fmt.Sprintf("backup-%s-%09d.json",
		utc.Format("20060102-150405"), utc.Nanosecond())
}

// Save writes a backup to a new file and returns its path.
//
//nolint:gocritic // backup struct copied for immutability
func (s *BackupStore) Save(b Backup) (string, error) {
	if err := s.fs.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path := filepath.Join(s.dir, backupFilename(b.Timestamp))
	if exists, _ := afero.Exists(s.fs, path); exists {
		return "", fmt.Errorf("backup file already exists: %s", path)
	}

	data, err := json.MarshalIndent(&b, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup: %w", err)
	}

	if err := afero.WriteFile(s.fs, path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}
	return path, nil
}

// Load reads a backup file by path.
func (s *BackupStore) Load(path string) (Backup, error) {
	var b Backup
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return b, fmt.Errorf("failed to read backup file: %w", err)
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("failed to unmarshal backup file: %w", err)
	}
	return b, nil
}

// Latest returns the most recent backup and its path. File naming embeds
// the timestamp so lexical order is chronological order.
func (s *BackupStore) Latest() (Backup, string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return Backup{}, "", ErrNoBackups
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "backup-") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return Backup{}, "", ErrNoBackups
	}
	sort.Strings(names)

	path := filepath.Join(s.dir, names[len(names)-1])
	b, err := s.Load(path)
	if err != nil {
		return Backup{}, "", err
	}
	return b, path, nil
}

// List returns all backup file paths, oldest first.
func (s *BackupStore) List() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, nil //nolint:nilerr // missing dir means no backups yet
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), "backup-") && strings.HasSuffix(e.Name(), ".json") {
			paths = append(paths, filepath.Join(s.dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}
