// Typed diagnostics produced while parsing and merging translation files

package translate

import "fmt"

// DiagnosticKind identifies one of the recoverable or fatal conditions the parser and query
// engine can report. See Diagnostic for the propagation policy of each kind.
type DiagnosticKind uint8

//goland:noinspection GoSnakeCaseUsage
const (
	DK_ParseError DiagnosticKind = iota
	DK_ArgumentMismatch
	DK_InvalidQuantifier
	DK_UnresolvedInclude
	DK_CountMismatch
	DK_DuplicateIdentifier
	DK_MissingIdentifier
)

var diagnosticKindNames = [...]string{
	DK_ParseError:          "ParseError",
	DK_ArgumentMismatch:    "ArgumentMismatch",
	DK_InvalidQuantifier:   "InvalidQuantifier",
	DK_UnresolvedInclude:   "UnresolvedInclude",
	DK_CountMismatch:       "CountMismatch",
	DK_DuplicateIdentifier: "DuplicateIdentifier",
	DK_MissingIdentifier:   "MissingIdentifier",
}

func (k DiagnosticKind) String() string {
	if int(k) < len(diagnosticKindNames) {
		return diagnosticKindNames[k]
	}
	return "Unknown"
}

// Diagnostic is the typed channel through which the parser and query engine report problems.
// Fatal kinds (ParseError, ArgumentMismatch, InvalidQuantifier at apply time) are returned as
// the function's error; recoverable kinds are collected and handed back alongside a result.
type Diagnostic struct {
	Kind    DiagnosticKind
	File    string //Logical file path, blank if not applicable
	Line    int    //1-based source line, 0 if not applicable
	Message string
}

func (d *Diagnostic) Error() string {
	if d.File == "" && d.Line == 0 {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	if d.Line == 0 {
		return fmt.Sprintf("%s(%s): %s", d.Kind, d.File, d.Message)
	}
	return fmt.Sprintf("%s(%s:%d): %s", d.Kind, d.File, d.Line, d.Message)
}

func newDiag(kind DiagnosticKind, file string, line int, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{Kind: kind, File: file, Line: line, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a *Diagnostic of the given kind. Callers can use this instead of
// matching on Error() strings.
func IsKind(err error, kind DiagnosticKind) bool {
	d, ok := err.(*Diagnostic)
	return ok && d.Kind == kind
}
