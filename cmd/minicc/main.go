package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minicc-lang/minicc/pkg/ast"
	"github.com/minicc-lang/minicc/pkg/lexer"
	"github.com/minicc-lang/minicc/pkg/parser"
	"github.com/minicc-lang/minicc/pkg/report"
	"github.com/minicc-lang/minicc/pkg/sema"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// Dump flags for writing reports next to the input
var (
	dSym   bool
	dTypes bool
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Accept single-dash dump flags for compiler-flag familiarity
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// dumpFlagNames lists all dump flags that should accept single-dash style
var dumpFlagNames = []string{"dsym", "dtypes"}

// normalizeFlags converts single-dash flags like -dsym to --dsym
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range dumpFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "minicc [file]",
		Short: "minicc checks programs of a small C-like teaching language",
		Long: `minicc is the front end of a compiler for a small C-like teaching
language. It parses a source file, validates declarations and derives
expression types, and can dump symbol and type listings next to the input.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			prog, err := checkFile(filename, errOut)
			if err != nil {
				return err
			}

			if dSym {
				if err := dumpDeclarations(prog, filename, out, errOut); err != nil {
					return err
				}
			}
			if dTypes {
				if err := dumpTypes(prog, filename, out, errOut); err != nil {
					return err
				}
			}
			if !dSym && !dTypes {
				fmt.Fprintf(errOut, "minicc: %s: no errors\n", filename)
			}
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.Flags().BoolVar(&dSym, "dsym", false, "Dump the declaration report")
	rootCmd.Flags().BoolVar(&dTypes, "dtypes", false, "Dump the expression type report")

	return rootCmd
}

// checkFile parses and analyzes a source file, returning the annotated
// program. Any diagnostic is printed to errOut and returned.
func checkFile(filename string, errOut io.Writer) (*ast.Program, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(errOut, "minicc: error reading %s: %v\n", filename, err)
		return nil, err
	}

	l := lexer.New(filename, string(content))
	p := parser.New(l)
	prog, err := p.ParseProgram()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return nil, err
	}

	if err := sema.Analyze(prog); err != nil {
		fmt.Fprintln(errOut, err)
		return nil, err
	}
	return prog, nil
}

// dumpDeclarations writes the declaration report to a .sym file beside the
// input, echoing it to stdout.
func dumpDeclarations(prog *ast.Program, filename string, out, errOut io.Writer) error {
	outputFilename := outputFilenameWithExt(filename, ".sym")

	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "minicc: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	printer := report.NewPrinter(outFile)
	printer.PrintDeclarations(prog)

	printer = report.NewPrinter(out)
	printer.PrintDeclarations(prog)

	return nil
}

// dumpTypes writes the type report to a .types file beside the input,
// echoing it to stdout.
func dumpTypes(prog *ast.Program, filename string, out, errOut io.Writer) error {
	outputFilename := outputFilenameWithExt(filename, ".types")

	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "minicc: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	printer := report.NewPrinter(outFile)
	printer.PrintTypes(prog)

	printer = report.NewPrinter(out)
	printer.PrintTypes(prog)

	return nil
}

// outputFilenameWithExt returns the report filename for an input:
// input.c -> input<newExt>
func outputFilenameWithExt(filename, newExt string) string {
	ext := ".c"
	if strings.HasSuffix(filename, ext) {
		return filename[:len(filename)-len(ext)] + newExt
	}
	return filename + newExt
}
