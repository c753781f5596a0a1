// Package script runs line based scripts against a complexmap.Map[any, any].
//
// Each line holds one operation:
//
//	# comment
//	let <name> <json>
//	set <ref> <ref>
//	get <ref> | has <ref> | delete <ref> | seek <ref>
//	current | next | key | valid | rewind | count | dump
//
// A ref is either a JSON literal or $name, a value bound earlier with let.
// JSON arrays and objects decode to new slices and maps,
// so as keys they only match when they are referenced through the same name.
package script

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/testcase/pp"

	"go.llib.dev/complexmap"
	"go.llib.dev/complexmap/port/ds/dsmap"
)

const (
	ErrSyntax         errorkit.Error = "script: syntax error"
	ErrUnknownCommand errorkit.Error = "script: unknown command"
	ErrUndefinedName  errorkit.Error = "script: undefined name"
)

const invalid = "<invalid>"

type Interpreter struct {
	Map *complexmap.Map[any, any]
	Out io.Writer

	names map[string]any
}

func New(out io.Writer, opts ...complexmap.Option[any]) (*Interpreter, error) {
	m, err := complexmap.New[any, any](nil, nil, opts...)
	if err != nil {
		return nil, err
	}
	return &Interpreter{Map: m, Out: out}, nil
}

// Run executes the script line by line.
// Failed operations are reported on Out and the run goes on,
// but a line that can't be parsed stops the run.
func (in *Interpreter) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var n int
	for scanner.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := in.exec(ctx, n, scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return scanner.Err()
}

// Exec executes a single line.
func (in *Interpreter) Exec(ctx context.Context, line string) error {
	return in.exec(ctx, 0, line)
}

func (in *Interpreter) exec(ctx context.Context, n int, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	logger.Debug(ctx, "executing script line",
		logging.Field("line", n),
		logging.Field("command", cmd))

	var err error
	switch cmd {
	case "let":
		err = in.let(rest)
	case "set":
		err = in.set(rest)
	case "get", "has", "delete", "seek":
		err = in.keyed(ctx, cmd, rest)
	case "current", "next", "key", "valid", "rewind", "count", "dump":
		if rest != "" {
			return ErrSyntax.F("%s takes no arguments", cmd)
		}
		in.cursor(ctx, cmd)
	default:
		return ErrUnknownCommand.F("%q", cmd)
	}
	return err
}

func (in *Interpreter) let(rest string) error {
	name, literal, ok := strings.Cut(rest, " ")
	if !ok || !isName(name) {
		return ErrSyntax.F("expected: let <name> <json>")
	}
	vals, err := in.refs(literal, 1)
	if err != nil {
		return err
	}
	if in.names == nil {
		in.names = make(map[string]any)
	}
	in.names[name] = vals[0]
	return nil
}

func (in *Interpreter) set(rest string) error {
	vals, err := in.refs(rest, 2)
	if err != nil {
		return err
	}
	in.Map.Set(vals[0], vals[1])
	return nil
}

func (in *Interpreter) keyed(ctx context.Context, cmd, rest string) error {
	vals, err := in.refs(rest, 1)
	if err != nil {
		return err
	}
	key := vals[0]
	switch cmd {
	case "get":
		val, err := in.Map.Get(key)
		if err != nil {
			in.fail(ctx, err)
			return nil
		}
		in.println(format(val))
	case "has":
		in.println(fmt.Sprint(in.Map.Has(key)))
	case "delete":
		if err := in.Map.Delete(key); err != nil {
			in.fail(ctx, err)
		}
	case "seek":
		if err := in.Map.Seek(key); err != nil {
			in.fail(ctx, err)
		}
	}
	return nil
}

func (in *Interpreter) cursor(ctx context.Context, cmd string) {
	switch cmd {
	case "current":
		in.printValue(in.Map.Current())
	case "next":
		in.printValue(in.Map.Next())
	case "key":
		if !in.Map.Valid() {
			in.fail(ctx, complexmap.ErrCursorOutOfRange)
			return
		}
		in.println(format(in.Map.Key()))
	case "valid":
		in.println(fmt.Sprint(in.Map.Valid()))
	case "rewind":
		in.Map.Rewind()
	case "count":
		in.println(fmt.Sprint(in.Map.Len()))
	case "dump":
		var i int
		for k, v := range dsmap.Iterate[any, any](in.Map.Iterator()) {
			in.println(fmt.Sprintf("%d: %s => %s", i, pp.Format(k), pp.Format(v)))
			i++
		}
	}
}

// refs parses exactly n refs from src.
func (in *Interpreter) refs(src string, n int) ([]any, error) {
	var vals []any
	for {
		src = strings.TrimLeftFunc(src, unicode.IsSpace)
		if src == "" {
			break
		}
		if len(vals) == n {
			return nil, ErrSyntax.F("unexpected input: %q", src)
		}
		if strings.HasPrefix(src, "$") {
			end := strings.IndexFunc(src, unicode.IsSpace)
			if end < 0 {
				end = len(src)
			}
			name := src[1:end]
			val, ok := in.names[name]
			if !ok {
				return nil, ErrUndefinedName.F("$%s", name)
			}
			vals = append(vals, val)
			src = src[end:]
			continue
		}
		dec := json.NewDecoder(strings.NewReader(src))
		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, ErrSyntax.Wrap(err)
		}
		vals = append(vals, val)
		src = src[dec.InputOffset():]
	}
	if len(vals) != n {
		return nil, ErrSyntax.F("expected %d argument(s), got %d", n, len(vals))
	}
	return vals, nil
}

func (in *Interpreter) fail(ctx context.Context, err error) {
	logger.Debug(ctx, "operation failed", logging.ErrField(err))
	in.println("error: " + err.Error())
}

func (in *Interpreter) printValue(val any, ok bool) {
	if !ok {
		in.println(invalid)
		return
	}
	in.println(format(val))
}

func (in *Interpreter) println(s string) {
	_, _ = fmt.Fprintln(in.Out, s)
}

// format renders values the way they were written in the script.
func format(v any) string {
	bs, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bs)
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
