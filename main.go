// Command mylangc translates MyLang source files into C.
//
//	mylangc prog.ml              writes prog.c
//	mylangc -out main.c prog.ml  writes main.c
//	mylangc -stdout a.ml b.ml    prints both translations
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"mylangc/pkg/compiler"
	"mylangc/pkg/utils"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// translation is the result of running the compiler over one source file.
type translation struct {
	srcPath string
	outPath string
	code    string
}

// sourceError ties a translation failure to the file and text it came from.
type sourceError struct {
	path string
	src  string
	err  error
}

func (e *sourceError) Error() string {
	return e.path + ":" + compiler.FormatDiagnostic(e.err, e.src)
}

func (e *sourceError) Unwrap() error { return e.err }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mylangc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outPath := fs.String("out", "", "output C file path (default: input with .c extension)")
	toStdout := fs.Bool("stdout", false, "write generated C to standard output")
	jobs := fs.Int("jobs", runtime.NumCPU(), "maximum number of files translated concurrently")
	verbose := fs.Bool("v", false, "log progress to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: mylangc [flags] <source> [<source>...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	sources := fs.Args()
	switch {
	case len(sources) == 0:
		fmt.Fprintln(stderr, "nothing to do: provide at least one source file")
		fs.Usage()
		return exitUsage
	case *outPath != "" && *toStdout:
		fmt.Fprintln(stderr, "use either -out or -stdout, not both")
		return exitUsage
	case *outPath != "" && len(sources) > 1:
		fmt.Fprintln(stderr, "-out requires exactly one source file")
		return exitUsage
	case *jobs < 1:
		fmt.Fprintf(stderr, "-jobs must be at least 1, got %d\n", *jobs)
		return exitUsage
	}

	logger := log.New(io.Discard, "mylangc: ", 0)
	if *verbose {
		logger.SetOutput(stderr)
	}

	results, err := translateAll(context.Background(), sources, *outPath, *jobs, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		if isTranslationError(err) {
			logger.Printf("translation failed, no files written")
		} else {
			logger.Printf("i/o failure, no files written")
		}
		return exitFailure
	}

	if *toStdout {
		for _, r := range results {
			if _, err := io.WriteString(stdout, r.code); err != nil {
				fmt.Fprintf(stderr, "failed to write output: %v\n", err)
				return exitFailure
			}
		}
		return exitOK
	}

	if err := checkOutputs(results); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	if err := writeOutputs(results, logger); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	return exitOK
}

// translateAll compiles every source on a bounded worker group. Nothing is
// returned unless all of them succeed; the first failure cancels the rest.
func translateAll(ctx context.Context, sources []string, outPath string, jobs int, logger *log.Logger) ([]translation, error) {
	results := make([]translation, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out := outPath
			if out == "" {
				out = defaultOutputPath(src)
			}
			code, err := translateFile(src)
			if err != nil {
				return err
			}
			logger.Printf("translated %s", src)
			results[i] = translation{srcPath: src, outPath: out, code: code}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func translateFile(path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input file %q: %w", path, err)
	}
	code, err := compiler.Compile(string(source))
	if err != nil {
		return "", &sourceError{path: path, src: string(source), err: err}
	}
	return code, nil
}

// checkOutputs rejects a batch in which two sources would write the same
// file or an output would replace one of the sources.
func checkOutputs(results []translation) error {
	sources := make(map[string]bool, len(results))
	for _, r := range results {
		full, _, err := utils.GetPathInfo(r.srcPath)
		if err != nil {
			return fmt.Errorf("resolving source path %q: %w", r.srcPath, err)
		}
		sources[full] = true
	}

	seen := make(map[string]string, len(results))
	for _, r := range results {
		full, _, err := utils.GetPathInfo(r.outPath)
		if err != nil {
			return fmt.Errorf("resolving output path %q: %w", r.outPath, err)
		}
		if sources[full] {
			return fmt.Errorf("output %s for %s would overwrite a source file", r.outPath, r.srcPath)
		}
		if prev, ok := seen[full]; ok {
			return fmt.Errorf("%s and %s both translate to %s", prev, r.srcPath, r.outPath)
		}
		seen[full] = r.srcPath
	}
	return nil
}

// writeOutputs stages every output beside its target and renames them into
// place only once all of them have been written.
func writeOutputs(results []translation, logger *log.Logger) error {
	staged := make([]*utils.StagedFile, 0, len(results))
	for _, r := range results {
		f, err := utils.StageFile(r.outPath, []byte(r.code), 0o644)
		if err != nil {
			for _, s := range staged {
				s.Discard()
			}
			return fmt.Errorf("failed to write C file %q: %w", r.outPath, err)
		}
		staged = append(staged, f)
	}

	for i, f := range staged {
		if err := f.Commit(); err != nil {
			for _, s := range staged[i+1:] {
				s.Discard()
			}
			return fmt.Errorf("failed to write C file %q: %w", results[i].outPath, err)
		}
		logger.Printf("%s -> %s (%d bytes)", results[i].srcPath, results[i].outPath, len(results[i].code))
	}
	return nil
}

func defaultOutputPath(inPath string) string {
	return utils.ReplaceExt(inPath, ".c")
}

// isTranslationError reports whether err came from the compiler rather than
// from the file system.
func isTranslationError(err error) bool {
	var lexErr *compiler.LexError
	var parseErr *compiler.ParseError
	return errors.As(err, &lexErr) || errors.As(err, &parseErr)
}
