// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"fmt"
	"os"
	"time"
)

// FileChecker checks if a file exists and is readable
type FileChecker struct {
	name string
	path string
}

// NewFileChecker creates a checker for file existence
func NewFileChecker(name, path string) *FileChecker {
	return &FileChecker{name: name, path: path}
}

func (c *FileChecker) Name() string {
	return c.name
}

func (c *FileChecker) Check(_ context.Context) CheckResult {
	if c.path == "" {
		return CheckResult{Status: StatusHealthy, Message: "not configured (optional)"}
	}

	info, err := os.Stat(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return CheckResult{Status: StatusUnhealthy, Error: "file not found", Message: c.path}
		}
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}
	if info.IsDir() {
		return CheckResult{Status: StatusUnhealthy, Error: "expected file, got directory"}
	}
	if info.Size() == 0 {
		return CheckResult{Status: StatusDegraded, Message: "file is empty"}
	}
	return CheckResult{Status: StatusHealthy, Message: "file exists and readable"}
}

// LastRunChecker checks if the last export succeeded and is fresh.
type LastRunChecker struct {
	getLastRun func() (time.Time, string)
	staleAfter time.Duration
	now        func() time.Time
}

// NewLastRunChecker creates a checker for the last export. A successful run
// older than staleAfter reports degraded; zero disables the age check.
func NewLastRunChecker(getLastRun func() (time.Time, string), staleAfter time.Duration) *LastRunChecker {
	return &LastRunChecker{getLastRun: getLastRun, staleAfter: staleAfter, now: time.Now}
}

func (c *LastRunChecker) Name() string {
	return "last_export"
}

func (c *LastRunChecker) Check(_ context.Context) CheckResult {
	lastRun, lastError := c.getLastRun()

	if lastRun.IsZero() {
		return CheckResult{Status: StatusUnhealthy, Message: "no successful export yet"}
	}
	if lastError != "" {
		// artifacts from the previous success are still served
		return CheckResult{Status: StatusDegraded, Error: lastError, Message: "last refresh failed"}
	}
	if c.staleAfter > 0 {
		if age := c.now().Sub(lastRun); age > c.staleAfter {
			return CheckResult{
				Status:  StatusDegraded,
				Message: fmt.Sprintf("last successful export %s ago", age.Truncate(time.Second)),
			}
		}
	}
	return CheckResult{Status: StatusHealthy, Message: "last export successful"}
}
