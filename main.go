package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"gopkg.microglot.org/astgen/internal/exc"
	"gopkg.microglot.org/astgen/internal/fs"
	"gopkg.microglot.org/astgen/internal/gdl"
	"gopkg.microglot.org/astgen/internal/generator"
)

type opts struct {
	Roots      []string
	Output     string
	Base       string
	DumpTokens bool
	DumpTree   bool
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("astgen", pflag.PanicOnError)
	flags.StringSliceVar(&op.Roots, "root", []string{"."}, "Root search paths for grammar files.")
	flags.StringVar(&op.Output, "output", gdl.DefaultOutput, "Output file or - for STDOUT.")
	flags.StringVar(&op.Base, "base", "", "Name of the generated base type. Defaults to the output file name without its extension.")
	flags.BoolVar(&op.DumpTokens, "dump-tokens", false, "Output the token stream as it is processed")
	flags.BoolVar(&op.DumpTree, "dump-tree", false, "Output the parsed grammar after parsing")
	_ = flags.Parse(os.Args[1:])
	targets := flags.Args()

	mf := make(fs.FileSystemMulti, 0, len(op.Roots))
	for _, root := range op.Roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			panic(errAbs.Error())
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			panic(err.Error())
		}
		mf = append(mf, rf)
	}

	// Output paths are resolved against the process root rather than the
	// search roots so relative outputs like ../lox/Expr.java keep working.
	outFS, err := fs.NewFileSystemLocal("/")
	if err != nil {
		panic(err.Error())
	}

	g, err := generator.New(generator.OptionWithFS(mf))
	if err != nil {
		panic(err)
	}

	out, err := g.Generate(ctx, &gdl.GenerateRequest{
		Targets:    targets,
		Output:     op.Output,
		BaseName:   op.Base,
		DumpTokens: op.DumpTokens,
		DumpTree:   op.DumpTree,
	})
	if err != nil {
		var me generator.MultiException
		if errors.As(err, &me) {
			for _, err := range me {
				fmt.Fprintln(os.Stderr, err.Error())
			}
			os.Exit(1)
		}
		panic(err)
	}

	for _, genFile := range out.Files {
		if err := writeFile(ctx, outFS, genFile); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}
}

func writeFile(ctx context.Context, out gdl.FileSystem, f gdl.GeneratedFile) error {
	if f.Name == "-" {
		_, err := io.WriteString(os.Stdout, f.Content)
		return err
	}
	path, err := filepath.Abs(f.Name)
	if err != nil {
		return exc.Wrap(exc.Location{URI: f.Name}, exc.CodeWriteFailure, err)
	}
	return out.Write(ctx, path, f.Content)
}
