// Command cypheri-test-tokenize reads cypheri source and dumps its token
// stream. It accepts up to two positional arguments, an input file and an
// output file, defaulting to standard input and standard output. Syntax
// errors are reported on the output stream and the exit code stays zero.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/cypheri-lang/cypheri/lexer"
	"github.com/cypheri-lang/cypheri/nametable"
	"github.com/cypheri-lang/cypheri/token"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	in, out, cleanup, err := openStreams(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open streams")
	}
	defer cleanup()

	source, err := io.ReadAll(in)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot read input")
	}

	nameTable := nametable.New()
	res := lexer.Tokenize(string(source), nameTable)
	if res.Err != nil {
		printError(out, res.Err)
		return
	}

	for _, tk := range res.Tokens {
		fmt.Fprintf(out, "%s:\t{ type=\"%s\"", tk.Loc, tk.Type)
		switch tk.Type {
		case token.INT:
			fmt.Fprintf(out, ", value=%d", tk.Integer)
		case token.NUMBER:
			fmt.Fprintf(out, ", value=%v", tk.Num)
		case token.STRING:
			fmt.Fprintf(out, ", value=\"%s\"", res.StrLiterals[tk.StrIdx])
		case token.IDENT:
			fmt.Fprintf(out, ", value=\"%s\"(%d)", nameTable.GetName(tk.ID), tk.ID)
		}
		fmt.Fprintln(out, " }")
	}
}

// printError reports a syntax error on the output stream in the driver
// format. The banner is colored only when writing to a terminal.
func printError(out io.Writer, err error) {
	banner := "Error: "
	if f, ok := out.(*os.File); ok && f == os.Stdout {
		banner = color.New(color.FgRed, color.Bold).Sprint(banner)
	}
	fmt.Fprintf(out, "%s\n%s\n", banner, err)
}

// openStreams resolves the optional input-file and output-file arguments.
// Both failures are reported together.
func openStreams(args []string) (io.Reader, io.Writer, func(), error) {
	in := io.Reader(os.Stdin)
	out := io.Writer(os.Stdout)
	var files []*os.File
	var errs *multierror.Error

	if len(args) >= 1 {
		f, err := os.Open(args[0])
		if err != nil {
			errs = multierror.Append(errs, err)
		} else {
			in = f
			files = append(files, f)
		}
	}
	if len(args) >= 2 {
		f, err := os.Create(args[1])
		if err != nil {
			errs = multierror.Append(errs, err)
		} else {
			out = f
			files = append(files, f)
		}
	}

	cleanup := func() {
		for _, f := range files {
			f.Close()
		}
	}
	return in, out, cleanup, errs.ErrorOrNil()
}
