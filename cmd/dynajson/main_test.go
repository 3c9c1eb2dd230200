package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	app, _ := newApp(stdout, stderr)
	_, err := app.Parse(args)
	return stdout.String(), stderr.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	valid := writeFile(t, dir, "valid.json", "{ \"b\": [1, 2.50, {\"c\": null}], \"a\": true }\n")
	trailing := writeFile(t, dir, "trailing.json", `[1,2,]`)
	broken := writeFile(t, dir, "broken.json", `{"a" 1}`)

	var testCases = []struct {
		description string
		args        []string
		expect      []string
		expectErr   bool
	}{
		{description: "fmt", args: []string{"fmt", valid}, expect: []string{`{"b":[1,2.5,{"c":null}],"a":true}` + "\n"}},
		{description: "fmt lenient", args: []string{"fmt", trailing}, expect: []string{"[1,2]\n"}},
		{description: "fmt strict", args: []string{"--strict", "fmt", trailing}, expectErr: true},
		{description: "validate", args: []string{"validate", valid, broken}, expect: []string{valid + ": OK", broken + ": Expecting ':' at 5"}, expectErr: true},
		{description: "validate depth", args: []string{"--max-depth", "1", "validate", valid}, expect: []string{"Too deep nesting 2"}, expectErr: true},
		{description: "stats", args: []string{"stats", valid}, expect: []string{"nodes: 7", "max depth: 3", "Number: 2", "Object: 2", "Array: 1", "True: 1", "Null: 1", "size: 43 B"}},
		{description: "yaml", args: []string{"yaml", valid}, expect: []string{"b:\n", "c: null", "a: true"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			stdout, _, err := run(t, testCase.args...)
			if testCase.expectErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			for _, fragment := range testCase.expect {
				assert.Contains(t, stdout, fragment)
			}
		})
	}
}

func TestFromYAML(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.yaml", "name: svc\nports:\n  - 80\n  - 443\nmeta:\n  zone: b\n  active: true\n")
	stdout, _, err := run(t, "from-yaml", doc)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"svc","ports":[80,443],"meta":{"zone":"b","active":true}}`+"\n", stdout)
}

func TestEncodingFlag(t *testing.T) {
	dir := t.TempDir()
	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String(`{"k":"v"}`)
	require.NoError(t, err)
	path := writeFile(t, dir, "utf16.json", encoded)
	stdout, _, err := run(t, "--encoding", "utf-16le", "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, `{"k":"v"}`+"\n", stdout)
}

func TestLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.json", `[]`)
	_, stderr, err := run(t, "--log.level", "debug", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "msg=\"parsed file\"")

	_, stderr, err = run(t, "validate", path)
	require.NoError(t, err)
	assert.NotContains(t, stderr, "parsed file")
}
