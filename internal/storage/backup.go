package storage

import (
	"fmt"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupPath returns the path to the backup file with the given rotation
// number for dataPath. Backups are named codes.json.bak.N; lower numbers
// are more recent (.bak.1 is the newest).
func BackupPath(dataPath string, n int) string {
	return fmt.Sprintf("%s%s.%d", dataPath, BackupSuffix, n)
}

// rotateBackups shifts existing backups to make room for a new one:
// .bak.2 -> .bak.3, .bak.1 -> .bak.2, dropping the oldest. Missing files
// are fine; only MaxBackupCount backups are ever kept.
func rotateBackups(dataPath string) error {
	oldest := BackupPath(dataPath, MaxBackupCount)
	if err := os.Remove(oldest); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(BackupPath(dataPath, i), BackupPath(dataPath, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// CreateBackup rotates the backup set and copies the current data file to
// .bak.1. If the data file doesn't exist yet there is nothing to back up
// and no error is returned.
func CreateBackup(dataPath string) error {
	if _, err := os.Stat(dataPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(dataPath); err != nil {
		return err
	}

	return copyFile(dataPath, BackupPath(dataPath, 1))
}

// BackupInfo describes one available backup file.
type BackupInfo struct {
	Number int    // rotation number (1 is most recent)
	Path   string // full path to the backup file
}

// ListBackups returns the available backups for dataPath sorted by recency.
// Returns an empty slice if no backups exist.
func ListBackups(dataPath string) []BackupInfo {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		path := BackupPath(dataPath, i)
		if _, err := os.Stat(path); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: path})
		}
	}
	return backups
}

// RestoreBackup replaces the data file with the numbered backup. The current
// state is backed up first, so a restore is itself recoverable.
func RestoreBackup(dataPath string, backupNum int) error {
	if backupNum < 1 || backupNum > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", backupNum, MaxBackupCount)
	}

	// Read the backup before CreateBackup rotates the files underneath it.
	backupPath := BackupPath(dataPath, backupNum)
	content, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", backupNum)
		}
		return err
	}

	if err := CreateBackup(dataPath); err != nil {
		return err
	}

	return os.WriteFile(dataPath, content, 0644)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = sourceFile.Close() }()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = destFile.Close() }()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Close()
}
