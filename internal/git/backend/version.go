package backend

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// Minimum supported git version. "git remote get-url" is the newest command
// we rely on; the "# good: [<hash>]" bisect log comments predate it.
var minGitVersion = gitVersion{major: 2, minor: 7, patch: 0}

type gitVersion struct {
	major int
	minor int
	patch int
}

func MinGitVersion() string {
	return minGitVersion.String()
}

func (v gitVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

func (v gitVersion) less(other gitVersion) bool {
	if v.major != other.major {
		return v.major < other.major
	}
	if v.minor != other.minor {
		return v.minor < other.minor
	}
	return v.patch < other.patch
}

// parseGitVersionOutput accepts the usual vendor variants:
//   - "git version 2.44.0"
//   - "git version 2.39.3 (Apple Git-146)"
//   - "git version 2.39.3.windows.1"
func parseGitVersionOutput(out string) (gitVersion, bool) {
	s := strings.TrimSpace(out)
	if _, after, ok := strings.Cut(s, "git version"); ok {
		s = strings.TrimSpace(after)
	}
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return gitVersion{}, false
	}
	s = s[start:]
	end := 0
	for end < len(s) && (s[end] == '.' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	parts := strings.Split(strings.Trim(s[:end], "."), ".")
	if len(parts) < 2 {
		return gitVersion{}, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return gitVersion{}, false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return gitVersion{}, false
	}
	patch := 0
	if len(parts) >= 3 {
		if p, err := strconv.Atoi(parts[2]); err == nil {
			patch = p
		}
	}
	return gitVersion{major: major, minor: minor, patch: patch}, true
}

func validateGitVersionOutput(out string) error {
	got, ok := parseGitVersionOutput(out)
	if !ok {
		return fmt.Errorf("unable to parse git version output: %q", strings.TrimSpace(out))
	}
	if got.less(minGitVersion) {
		return fmt.Errorf("git %s is too old; bisect-go requires git >= %s", got, minGitVersion)
	}
	return nil
}

var (
	gitVersionOnce sync.Once
	gitVersionOut  string
	gitVersionErr  error
)

// GitVersion returns the raw "git --version" output, cached for the process.
func GitVersion() (string, error) {
	gitVersionOnce.Do(func() {
		outBytes, err := exec.Command("git", "--version").CombinedOutput()
		gitVersionOut = strings.TrimSpace(string(outBytes))
		if err != nil {
			if gitVersionOut != "" {
				gitVersionErr = fmt.Errorf("git --version: %v: %s", err, gitVersionOut)
				return
			}
			gitVersionErr = fmt.Errorf("git --version: %w", err)
		}
	})
	return gitVersionOut, gitVersionErr
}

var (
	minGitVersionOnce sync.Once
	minGitVersionErr  error
)

func ensureMinGitVersion() error {
	minGitVersionOnce.Do(func() {
		out, err := GitVersion()
		if err != nil {
			minGitVersionErr = err
			return
		}
		minGitVersionErr = validateGitVersionOutput(out)
	})
	return minGitVersionErr
}
