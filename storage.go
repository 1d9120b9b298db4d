// FILE: lixenwraith/rlog/storage.go
package rlog

import (
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// rotatedPattern matches any name ending in a numeric suffix, e.g. app.log.3
var rotatedPattern = regexp.MustCompile(`^.+\.[0-9]+$`)

// ensureDirectory creates dir and its parents when missing
func ensureDirectory(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmtErrorf("failed to create log directory '%s': %w", dir, err)
	}
	return nil
}

// suffixedName returns name.n
func suffixedName(name string, n int64) string {
	return name + "." + strconv.FormatInt(n, 10)
}

// rotatedSuffix reports the N of a candidate named name.N
func rotatedSuffix(name, candidate string) (int64, bool) {
	if !rotatedPattern.MatchString(candidate) || !strings.HasPrefix(candidate, name+".") {
		return 0, false
	}
	n, err := strconv.ParseInt(candidate[len(name)+1:], 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// residualSuffixes lists the rotation slots in dir above maxCount, highest first
func residualSuffixes(fs FileStore, dir, name string, maxCount int64) []int64 {
	names, err := fs.List(dir)
	if err != nil {
		return nil
	}
	var residual []int64
	for _, candidate := range names {
		if n, ok := rotatedSuffix(name, candidate); ok && n > maxCount {
			residual = append(residual, n)
		}
	}
	sort.Slice(residual, func(i, j int) bool { return residual[i] > residual[j] })
	return residual
}

// deleteLogs removes the active file and every file in dir whose name starts with name
func deleteLogs(fs FileStore, dir, name string) (deleted int, err error) {
	names, err := fs.List(dir)
	if err != nil {
		return 0, err
	}
	for _, candidate := range names {
		if !strings.HasPrefix(candidate, name) {
			continue
		}
		if derr := fs.Delete(dir, candidate); derr != nil {
			err = combineErrors(err, derr)
			continue
		}
		deleted++
	}
	return deleted, err
}

// matchPattern applies a '*' wildcard pattern: empty matches everything,
// no '*' requires an exact match, otherwise the literal pieces must appear in order
// with the first anchored at the start and the last at the end.
func matchPattern(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return pattern == name
	}

	pieces := strings.Split(pattern, "*")
	prefix, suffix := pieces[0], pieces[len(pieces)-1]
	if !strings.HasPrefix(name, prefix) {
		return false
	}
	rest := name[len(prefix):]
	if len(rest) < len(suffix) || !strings.HasSuffix(rest, suffix) {
		return false
	}
	rest = rest[:len(rest)-len(suffix)]
	for _, piece := range pieces[1 : len(pieces)-1] {
		i := strings.Index(rest, piece)
		if i < 0 {
			return false
		}
		rest = rest[i+len(piece):]
	}
	return true
}

// deleteMatchingLogs removes every file in dir matching pattern
func deleteMatchingLogs(fs FileStore, dir, pattern string) (deleted int, err error) {
	names, err := fs.List(dir)
	if err != nil {
		return 0, err
	}
	for _, candidate := range names {
		if !matchPattern(pattern, candidate) {
			continue
		}
		if derr := fs.Delete(dir, candidate); derr != nil {
			err = combineErrors(err, derr)
			continue
		}
		deleted++
	}
	return deleted, err
}
