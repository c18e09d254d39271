// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter cross-checks the embedded locale files against the i18n.T
// calls in the source tree: keys used in code but missing from a locale,
// keys present in the primary locale but never used, and string literals
// that look like user-facing text bypassing translation.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "en.yaml"
)

// location points at a literal in the scanned tree.
type location struct {
	path string
	line int
}

func main() {
	fmt.Println("i18n-linter: scanning source tree")

	used, err := findUsedKeys(".")
	if err != nil {
		fatalf("scan for used keys: %v", err)
	}
	fmt.Printf("%d translation keys referenced in code\n", len(used))

	primary, err := loadKeysFromLocale(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		fatalf("load primary locale %s: %v", primaryLocale, err)
	}
	fmt.Printf("%d keys in %s\n\n", len(primary), primaryLocale)

	orphans := sortedDiff(primary, used)
	if len(orphans) > 0 {
		fmt.Printf("orphaned keys (in %s, unused in code):\n", primaryLocale)
		for _, k := range orphans {
			fmt.Printf("  %s\n", k)
		}
		fmt.Println()
	}

	missing, err := checkSecondaryLocales(primary)
	if err != nil {
		fatalf("check secondary locales: %v", err)
	}

	suspects, err := findUntranslatedStrings(".", used, primary)
	if err != nil {
		fatalf("scan for untranslated strings: %v", err)
	}
	if len(suspects) > 0 {
		fmt.Println("possibly untranslated literals:")
		literals := make([]string, 0, len(suspects))
		for lit := range suspects {
			literals = append(literals, lit)
		}
		sort.Strings(literals)
		for _, lit := range literals {
			at := suspects[lit][0]
			fmt.Printf("  %q (%s:%d)\n", lit, at.path, at.line)
		}
		fmt.Println()
	}

	switch {
	case missing:
		fmt.Println("FAIL: locale files are out of sync")
		os.Exit(1)
	case len(orphans) > 0:
		fmt.Println("WARN: orphaned keys found, consider removing them")
	default:
		fmt.Println("OK: locale files are consistent")
	}
}

func fatalf(format string, v ...any) {
	fmt.Fprintf(os.Stderr, "i18n-linter: "+format+"\n", v...)
	os.Exit(1)
}

// sortedDiff returns the keys of a that are absent from b, sorted.
func sortedDiff(a, b map[string]struct{}) []string {
	var out []string
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// checkSecondaryLocales verifies every non-primary locale carries all
// primary keys. Reports per file and returns whether anything is missing.
func checkSecondaryLocales(primary map[string]struct{}) (bool, error) {
	files, err := filepath.Glob(filepath.Join(localesDir, "*.yaml"))
	if err != nil {
		return false, err
	}

	anyMissing := false
	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			fmt.Printf("%s: unreadable: %v\n", file, err)
			anyMissing = true
			continue
		}
		missing := sortedDiff(primary, keys)
		if len(missing) == 0 {
			fmt.Printf("%s: complete\n", file)
			continue
		}
		anyMissing = true
		fmt.Printf("%s: %d missing key(s):\n", file, len(missing))
		for _, k := range missing {
			fmt.Printf("  %s\n", k)
		}
	}
	fmt.Println()
	return anyMissing, nil
}

// usedKeyRe matches i18n.T("...") calls and bare dotted literals that are
// used as translation keys (e.g. keys held in slices or maps).
var usedKeyRe = regexp.MustCompile(`i18n\.T\("([^"]+)"|\"([a-z]+\.[a-z\._]+)\"`)

// findUsedKeys collects every translation key referenced from Go sources
// under root, skipping tests and the tools tree itself.
func findUsedKeys(root string) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	err := walkGoSources(root, func(path string, content string) {
		for _, match := range usedKeyRe.FindAllStringSubmatch(content, -1) {
			if match[1] != "" {
				keys[match[1]] = struct{}{}
			} else if match[2] != "" {
				keys[match[2]] = struct{}{}
			}
		}
	})
	return keys, err
}

// walkGoSources invokes fn on every non-test .go file under root, skipping
// the tools directory.
func walkGoSources(root string, fn func(path, content string)) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if info.Name() == "tools" || strings.HasPrefix(info.Name(), "_") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fn(path, string(content))
		return nil
	})
}

var (
	// callRe finds a function call with a string literal first argument.
	callRe = regexp.MustCompile(`([a-zA-Z0-9_]+\.)?([a-zA-Z0-9_]+)\("([^"]+)"`)
	// keyShapeRe matches literals shaped like translation keys.
	keyShapeRe = regexp.MustCompile(`^[a-z_]+\.[a-z\._]+$`)
	// constShapeRe matches ALL_CAPS action constants.
	constShapeRe = regexp.MustCompile(`^[A-Z_]+$`)
	// formatOnlyRe matches literals that are just format scaffolding.
	formatOnlyRe = regexp.MustCompile(`^[\s%.,:;()#\d\w-]*%[\s\w-]*$`)
)

// ignoredCallees are call targets whose literals are never user-facing
// translations (raw prints, low-level writers).
var ignoredCallees = map[string]struct{}{
	"Print": {}, "Println": {}, "Printf": {},
	"Fatal": {}, "Fatalf": {}, "WriteString": {},
}

// sqlPrefixes marks literals that are queries, not prose.
var sqlPrefixes = []string{
	"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "TRUNCATE ",
	"PRAGMA ", "CREATE ", "ALTER ", "DROP ",
}

// findUntranslatedStrings flags string literals that look like user-facing
// text passed to a function directly instead of going through i18n.T.
// usedKeys and primaryKeys suppress literals that are themselves keys.
func findUntranslatedStrings(root string, usedKeys, primaryKeys map[string]struct{}) (map[string][]location, error) {
	suspects := make(map[string][]location)
	err := walkGoSources(root, func(path string, content string) {
		for i, line := range strings.Split(content, "\n") {
			for _, match := range callRe.FindAllStringSubmatch(line, -1) {
				callee, literal := match[2], match[3]
				if _, skip := ignoredCallees[callee]; skip {
					continue
				}
				if isNonProseLiteral(literal, primaryKeys) {
					continue
				}
				suspects[literal] = append(suspects[literal], location{path: path, line: i + 1})
			}
		}
	})
	return suspects, err
}

// isNonProseLiteral filters out literals that cannot be user-facing text:
// known or key-shaped translation keys, short tokens, URLs and file URIs,
// SQL, time layouts, action constants and pure format strings.
func isNonProseLiteral(literal string, primaryKeys map[string]struct{}) bool {
	if _, ok := primaryKeys[literal]; ok {
		return true
	}
	if keyShapeRe.MatchString(literal) {
		return true
	}
	if len(literal) < 4 {
		return true
	}
	if strings.HasPrefix(literal, "file:") || strings.HasPrefix(literal, "http") {
		return true
	}
	upper := strings.ToUpper(literal)
	for _, prefix := range sqlPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	if strings.HasPrefix(literal, "2006-") {
		return true
	}
	if constShapeRe.MatchString(literal) {
		return true
	}
	if formatOnlyRe.MatchString(literal) && !strings.Contains(literal, " ") {
		return true
	}
	return false
}

// loadKeysFromLocale reads one YAML locale file into a flat key set.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested YAML document into dot-separated keys.
// Array elements get an index suffix; only leaves become keys.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	case []interface{}:
		for i, val := range v {
			flattenYAML(fmt.Sprintf("%s[%d]", prefix, i), val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
