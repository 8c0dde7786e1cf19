package aicontext

import (
	"regexp"
	"sort"
	"strings"
)

// pattern pairs a compiled regex with the placeholder tag it redacts to.
// Order matters: more-specific patterns must be attempted before the
// generic API-key-like rule, or classification loses precision (spec.md
// §4.7).
type pattern struct {
	name string
	re   *regexp.Regexp
}

// patterns is the ordered library spec.md §4.7 requires, most specific
// first.
var patterns = []pattern{
	{"AWS Access Key", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"GitHub Token", regexp.MustCompile(`ghp_[A-Za-z0-9]{36}`)},
	{"OpenAI API Key", regexp.MustCompile(`sk-[A-Za-z0-9]{48}`)},
	{"JWT", regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)},
	{"PEM Private Key", regexp.MustCompile(`-----BEGIN (RSA |EC |OPENSSH )?PRIVATE KEY-----`)},
	{"URI Credentials", regexp.MustCompile(`(mongodb|postgres|mysql)://[^@]+@\S+`)},
	{"Password", regexp.MustCompile(`(?i)password[=:]\s*\S+`)},
	{"Token", regexp.MustCompile(`(?i)token[=:]\s*\S+`)},
	{"API Key", regexp.MustCompile(`[A-Za-z0-9_-]{32,}`)},
}

// envKeyMarkers are substrings whose presence in an uppercased environment
// variable name triggers wholesale value redaction (spec.md §4.7).
var envKeyMarkers = []string{"API_KEY", "SECRET", "PASSWORD", "TOKEN", "PRIVATE_KEY"}

// match is one resolved, non-overlapping redaction span.
type match struct {
	start, end int
	name       string
}

// redactString scans s with the ordered pattern library, resolves
// overlapping matches by earliest-start-then-longest-length, and replaces
// each surviving match with "[REDACTED:<name>]". It returns the redacted
// string and the number of replacements made.
func redactString(s string) (string, int) {
	var all []match
	for _, pat := range patterns {
		for _, loc := range pat.re.FindAllStringIndex(s, -1) {
			all = append(all, match{start: loc[0], end: loc[1], name: pat.name})
		}
	}
	if len(all) == 0 {
		return s, 0
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return (all[i].end - all[i].start) > (all[j].end - all[j].start)
	})

	var kept []match
	lastEnd := -1
	for _, m := range all {
		if m.start < lastEnd {
			continue // overlaps a previously kept, higher-priority match
		}
		kept = append(kept, m)
		lastEnd = m.end
	}

	var b strings.Builder
	cursor := 0
	for _, m := range kept {
		b.WriteString(s[cursor:m.start])
		b.WriteString("[REDACTED:" + m.name + "]")
		cursor = m.end
	}
	b.WriteString(s[cursor:])
	return b.String(), len(kept)
}

// Redact scans every string field of snap with the pattern library and
// wholesale-redacts environment values whose key name matches a secret
// marker, returning a new snapshot (the input is never mutated) with
// Redacted and RedactionCount set (spec.md §4.7).
func Redact(snap ContextSnapshot) ContextSnapshot {
	out := snap
	count := 0

	if out.CurrentWorkingDirectory != nil {
		r, n := redactString(*out.CurrentWorkingDirectory)
		out.CurrentWorkingDirectory = &r
		count += n
	}
	if out.LastCommand != nil {
		r, n := redactString(*out.LastCommand)
		out.LastCommand = &r
		count += n
	}
	if out.GitBranch != nil {
		r, n := redactString(*out.GitBranch)
		out.GitBranch = &r
		count += n
	}
	if out.GitStatus != nil {
		r, n := redactString(*out.GitStatus)
		out.GitStatus = &r
		count += n
	}
	if out.RecentOutputLines != nil {
		lines := make([]string, len(out.RecentOutputLines))
		for i, l := range out.RecentOutputLines {
			r, n := redactString(l)
			lines[i] = r
			count += n
		}
		out.RecentOutputLines = lines
	}
	if out.ScrollbackLines != nil {
		lines := make([]string, len(out.ScrollbackLines))
		for i, l := range out.ScrollbackLines {
			r, n := redactString(l)
			lines[i] = r
			count += n
		}
		out.ScrollbackLines = lines
	}
	if out.EnvironmentVariables != nil {
		env := make(map[string]string, len(out.EnvironmentVariables))
		for k, v := range out.EnvironmentVariables {
			if isSecretEnvKey(k) {
				env[k] = "[REDACTED]"
				count++
				continue
			}
			r, n := redactString(v)
			env[k] = r
			count += n
		}
		out.EnvironmentVariables = env
	}

	out.RedactionCount = count
	out.Redacted = count > 0
	return out
}

func isSecretEnvKey(key string) bool {
	upper := strings.ToUpper(key)
	for _, marker := range envKeyMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
