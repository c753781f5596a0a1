package script_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"

	"go.llib.dev/complexmap"
	"go.llib.dev/complexmap/internal/script"
)

func TestInterpreter_Run(t *testing.T) {
	s := testcase.NewSpec(t)
	s.Before(func(t *testcase.T) { logger.Testing(t) })

	var (
		out    = let.Var(s, func(t *testcase.T) *bytes.Buffer { return &bytes.Buffer{} })
		strict = let.Var(s, func(t *testcase.T) bool { return false })
		src    = let.Var(s, func(t *testcase.T) string { return "" })
	)
	subject := let.Var(s, func(t *testcase.T) *script.Interpreter {
		var opts []complexmap.Option[any]
		if strict.Get(t) {
			opts = append(opts, complexmap.Strict[any]())
		}
		in, err := script.New(out.Get(t), opts...)
		assert.NoError(t, err)
		return in
	})
	act := func(t *testcase.T) error {
		return subject.Get(t).Run(context.Background(), strings.NewReader(src.Get(t)))
	}
	lines := func(t *testcase.T) []string {
		return strings.Split(strings.TrimSuffix(out.Get(t).String(), "\n"), "\n")
	}

	s.When("the script walks through the map", func(s *testcase.Spec) {
		src.Let(s, func(t *testcase.T) string {
			return `
# build
set "a" 1
set "b" 2
set "c" 3
count
get "b"
set "b" 20
get "b"
set "d" 4
seek "d"
key
delete "a"
count
has "a"
rewind
current
next
next
next
valid
`
		})

		s.Then("it prints the results of the operations", func(t *testcase.T) {
			assert.NoError(t, act(t))
			assert.Equal(t, []string{
				"3", "2", "20", `"d"`, "3", "false",
				"20", "3", "4", "<invalid>", "false",
			}, lines(t))
		})
	})

	s.When("a failing operation is in the middle", func(s *testcase.Spec) {
		src.Let(s, func(t *testcase.T) string {
			return "get \"missing\"\nseek \"missing\"\nkey\nset 1 2\ncount"
		})

		s.Then("errors are printed and the run goes on", func(t *testcase.T) {
			assert.NoError(t, act(t))
			got := lines(t)
			assert.Equal(t, 4, len(got))
			assert.Contains(t, got[0], "error: ")
			assert.Contains(t, got[0], complexmap.ErrKeyNotFound.Error())
			assert.Contains(t, got[1], complexmap.ErrKeyNotFound.Error())
			assert.Contains(t, got[2], complexmap.ErrCursorOutOfRange.Error())
			assert.Equal(t, "1", got[3])
		})
	})

	s.When("an array is bound to a name", func(s *testcase.Spec) {
		src.Let(s, func(t *testcase.T) string {
			return `
let list [1, 2]
set $list "by name"
set [1, 2] "literal"
count
get $list
has [1, 2]
`
		})

		s.Then("only the same instance matches", func(t *testcase.T) {
			assert.NoError(t, act(t))
			assert.Equal(t, []string{"2", `"by name"`, "false"}, lines(t))
		})
	})

	s.When("the map is dumped", func(s *testcase.Spec) {
		src.Let(s, func(t *testcase.T) string {
			return "set \"a\" \"x\"\nset \"b\" \"y\"\ndump"
		})

		s.Then("every entry is printed in order", func(t *testcase.T) {
			assert.NoError(t, act(t))
			got := out.Get(t).String()
			assert.Contains(t, got, `0: "a" => "x"`)
			assert.Contains(t, got, `1: "b" => "y"`)
		})
	})

	s.When("strict mode is on", func(s *testcase.Spec) {
		strict.Let(s, func(t *testcase.T) bool { return true })
		src.Let(s, func(t *testcase.T) string {
			return `
set "a" 1
set "b" 2
set "c" 3
seek "b"
delete "b"
next
key
`
		})

		s.Then("the cursor follows its entry", func(t *testcase.T) {
			assert.NoError(t, act(t))
			assert.Equal(t, []string{"3", `"c"`}, lines(t))
		})
	})

	s.When("the script has a syntax error", func(s *testcase.Spec) {
		src.Let(s, func(t *testcase.T) string {
			return "set \"a\" 1\nset \"b\"\ncount"
		})

		s.Then("the run stops with the line number", func(t *testcase.T) {
			err := act(t)
			assert.ErrorIs(t, script.ErrSyntax, err)
			assert.Contains(t, err.Error(), "line 2")
			assert.Empty(t, out.Get(t).String())
			assert.Equal(t, 1, subject.Get(t).Map.Len())
		})
	})

	s.When("a command is unknown", func(s *testcase.Spec) {
		src.Let(s, func(t *testcase.T) string {
			return "frobnicate"
		})

		s.Then("the run stops", func(t *testcase.T) {
			assert.ErrorIs(t, script.ErrUnknownCommand, act(t))
		})
	})

	s.When("a name is not bound", func(s *testcase.Spec) {
		src.Let(s, func(t *testcase.T) string {
			return "get $nope"
		})

		s.Then("the run stops", func(t *testcase.T) {
			assert.ErrorIs(t, script.ErrUndefinedName, act(t))
		})
	})

	s.When("the context is cancelled", func(s *testcase.Spec) {
		src.Let(s, func(t *testcase.T) string {
			return "count"
		})

		s.Then("nothing is executed", func(t *testcase.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			err := subject.Get(t).Run(ctx, strings.NewReader(src.Get(t)))
			assert.ErrorIs(t, context.Canceled, err)
			assert.Empty(t, out.Get(t).String())
		})
	})
}

func TestInterpreter_Exec(t *testing.T) {
	logger.Testing(t)

	var out bytes.Buffer
	in, err := script.New(&out)
	assert.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, in.Exec(ctx, `set {"id": 1} null`))
	assert.NoError(t, in.Exec(ctx, `set null true`))
	assert.NoError(t, in.Exec(ctx, "   "))
	assert.NoError(t, in.Exec(ctx, "# nothing"))
	assert.NoError(t, in.Exec(ctx, "get null"))
	assert.Equal(t, 2, in.Map.Len())
	assert.Equal(t, "true\n", out.String())

	assert.ErrorIs(t, script.ErrSyntax, in.Exec(ctx, "count 1"))
	assert.ErrorIs(t, script.ErrSyntax, in.Exec(ctx, "let 1"))
	assert.ErrorIs(t, script.ErrSyntax, in.Exec(ctx, "get {"))
}
