package engine

import (
	"fmt"
	"strings"
)

// Kind classifies a configuration failure
type Kind int

const (
	MissingOptions Kind = iota
	InvalidRuleShape
	MissingPattern
	PatternTypeError
	MissingReplacer
	ReplacerTypeError
)

var kindNames = map[Kind]string{
	MissingOptions:    "MissingOptions",
	InvalidRuleShape:  "InvalidRuleShape",
	MissingPattern:    "MissingPattern",
	PatternTypeError:  "PatternTypeError",
	MissingReplacer:   "MissingReplacer",
	ReplacerTypeError: "ReplacerTypeError",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// message codes select the text template of a Kind
var messageCodes = map[Kind]int{
	MissingOptions:    0,
	MissingPattern:    1,
	MissingReplacer:   1,
	PatternTypeError:  2,
	ReplacerTypeError: 3,
	InvalidRuleShape:  4,
}

var errorMessages = map[int]string{
	0: "options are required.",
	1: "option is required.",
	2: "option must be a RegExp.",
	3: "option must be a String or a Function",
	4: "options item must be an Object.",
}

// Sentinels for errors.Is; they match any *Error of the same Kind
var (
	ErrMissingOptions   = &Error{Kind: MissingOptions}
	ErrInvalidRuleShape = &Error{Kind: InvalidRuleShape}
	ErrMissingPattern   = &Error{Kind: MissingPattern, Label: LabelTest}
	ErrPatternType      = &Error{Kind: PatternTypeError, Label: LabelTest}
	ErrMissingReplacer  = &Error{Kind: MissingReplacer, Label: LabelReplacer}
	ErrReplacerType     = &Error{Kind: ReplacerTypeError, Label: LabelReplacer}
)

// Error is a fatal configuration error raised while evaluating an import
type Error struct {
	Kind   Kind
	Label  string
	Plugin string
}

func newError(plugin string, kind Kind, label string) *Error {
	return &Error{Kind: kind, Label: label, Plugin: plugin}
}

// Code returns the numeric classification used to pick the message text
func (e *Error) Code() int {
	return messageCodes[e.Kind]
}

// Error renders "\n<plugin>: «<label>» <text>", the label part omitted when empty
func (e *Error) Error() string {
	plugin := e.Plugin
	if plugin == "" {
		plugin = PluginName
	}
	label := ""
	if e.Label != "" {
		label = "«" + e.Label + "»"
	}
	msg := strings.TrimSpace(label + " " + errorMessages[e.Code()])
	return "\n" + plugin + ": " + msg
}

// Is reports whether target is an *Error of the same Kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// ErrorMessage returns the message an error of the given code and label
// carries under the default plugin name.
func ErrorMessage(code int, label string) string {
	for kind, c := range messageCodes {
		if c == code {
			return (&Error{Kind: kind, Label: label}).Error()
		}
	}
	return ""
}
