// Command judge-repl is an interactive devtool for stepping through an
// output log one event at a time against a fresh world state. It is not
// part of the judge's verdict path: nothing it prints is authoritative.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/elevsim/judge/replay"
	"github.com/elevsim/judge/requeststream"
	"github.com/elevsim/judge/worldstate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("judge-repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputFile := fs.String("input_file", "", "optional request stream, for checking RECEIVE/IN against real passengers")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	var stream *requeststream.Stream
	if *inputFile != "" {
		in, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer in.Close()
		stream, err = requeststream.Parse(in)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	} else {
		stream, _ = requeststream.Parse(strings.NewReader(""))
	}

	world := worldstate.New(stream)
	session := replay.New(world, stdout)

	fmt.Fprintln(stdout, "enter an output-log line to apply it; 'history' lists entered lines; 'q' quits")
	if err := session.Run(stdin); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
