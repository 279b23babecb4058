package processor

import (
	"fmt"
	"go/parser"
	"go/token"
	"strings"
)

// Validation is the outcome of the safety filter.
type Validation struct {
	Valid  bool
	Reason string
}

// osImport is tolerated on its own: models occasionally emit the import
// without touching the package. Any actual os call is still rejected.
const osImport = `"os"`

// denylist holds substrings rejected by a case-insensitive scan. This is an
// advisory filter, not a security boundary: obfuscated or semantically
// equivalent calls slip through.
var denylist = []string{
	`"os/exec"`,
	`"syscall"`,
	`"unsafe"`,
	`"net`,
	`"plugin"`,
	`"io/ioutil"`,
	osImport,
	"os.",
	"exec.",
	"syscall.",
	"unsafe.",
	"http.",
	"ioutil.",
	"reflect.",
	"go func",
	"panic(",
}

// Validate checks generated code before execution. Code is invalid when
// empty, when it contains a denylisted substring, or when it does not parse
// as well-formed script statements.
func Validate(code string) Validation {
	if strings.TrimSpace(code) == "" {
		return Validation{Valid: false, Reason: "empty code"}
	}

	codeLower := strings.ToLower(code)
	for _, pattern := range denylist {
		if !strings.Contains(codeLower, strings.ToLower(pattern)) {
			continue
		}
		if pattern == osImport && !strings.Contains(codeLower, "os.") {
			continue
		}
		return Validation{
			Valid:  false,
			Reason: fmt.Sprintf("potentially unsafe operation detected: %s", pattern),
		}
	}

	if err := checkSyntax(code); err != nil {
		return Validation{
			Valid:  false,
			Reason: fmt.Sprintf("syntax error: %v", err),
		}
	}

	return Validation{Valid: true}
}

// checkSyntax parses the statements the way the executor will wrap them.
func checkSyntax(code string) error {
	src := "package main\n\nfunc run() {\n" + code + "\n}\n"
	_, err := parser.ParseFile(token.NewFileSet(), "script.go", src, 0)
	return err
}
