// Command cmap runs complexmap scripts.
//
//	cmap [--strict] [--file script.cmap]
//
// Without --file, the script is read from the standard input.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.llib.dev/frameless/pkg/cli"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"

	"go.llib.dev/complexmap"
	"go.llib.dev/complexmap/internal/script"
)

func main() {
	cli.Main(context.Background(), Command{})
}

type Command struct {
	Strict bool   `flag:"strict" env:"CMAP_STRICT" desc:"keep the cursor on its entry when entries are deleted"`
	File   string `flag:"file,f" desc:"path of the script, the standard input is used when empty"`
}

func (cmd Command) Summary() string {
	return "cmap executes complexmap scripts line by line"
}

func (cmd Command) ServeCLI(w cli.Response, r *cli.Request) {
	ctx := r.Context()

	var opts []complexmap.Option[any]
	if cmd.Strict {
		opts = append(opts, complexmap.Strict[any]())
	}
	in, err := script.New(w, opts...)
	if err != nil {
		fail(w, err)
		return
	}

	var src io.Reader = r.Body
	if cmd.File != "" {
		f, err := os.Open(cmd.File)
		if err != nil {
			fail(w, err)
			return
		}
		defer f.Close()
		src = f
	}

	logger.Debug(ctx, "running script",
		logging.Field("file", cmd.File),
		logging.Field("strict", cmd.Strict))

	if err := in.Run(ctx, src); err != nil {
		logger.Debug(ctx, "script failed", logging.ErrField(err))
		fail(w, err)
	}
}

func fail(w cli.Response, err error) {
	w.ExitCode(cli.ExitCodeError)
	_, _ = fmt.Fprintln(w, err.Error())
}
