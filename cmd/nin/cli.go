package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/olgasafonova/norwegian-id-mcp-server/internal/errors"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/nin"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/norway"
	"github.com/olgasafonova/norwegian-id-mcp-server/internal/registry"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// syntaxCode is the exit code for malformed command lines.
const syntaxCode = -1

// result is the outcome of one validation or generation.
type result struct {
	Code    apierrors.Code
	Message string
}

func (r result) String() string {
	msg := r.Message
	if msg == "" {
		msg = "Ok"
	}
	return fmt.Sprintf("%d: %s", int(r.Code), msg)
}

func resultOf(err error) result {
	if err == nil {
		return result{Code: apierrors.OK}
	}
	return result{Code: apierrors.CodeOf(err), Message: err.Error()}
}

var noMatch = result{Code: apierrors.NoMatchFound, Message: "No ID number found."}

// syntaxError marks a command line that could not be interpreted.
type syntaxError struct {
	err error
}

func (e syntaxError) Error() string { return e.err.Error() }

func syntaxErrorf(format string, args ...any) error {
	return syntaxError{fmt.Errorf(format, args...)}
}

type cli struct {
	gen    *nin.Generator
	quiet  bool
	repeat bool
	code   apierrors.Code
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer, gen *nin.Generator) int {
	c := &cli{gen: gen}
	root := c.rootCmd()
	if args == nil {
		args = []string{} // cobra falls back to os.Args on nil
	}
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteC()
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		if cmd != nil {
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return syntaxCode
	}
	return int(c.code)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nin",
		Short: "Validate and generate Norwegian identity numbers",
		Long: `nin validates and generates Norwegian organization numbers, birth numbers
(fødselsnummer) and D-numbers.

Kinds may be abbreviated to their first letter: o(rg), b(irth), d(-number).
The exit code is 0 for a valid or generated number, the result code of the
first failed rule otherwise, and -1 for a syntax error.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if !c.quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "Norwegian identity numbers (nin %s)\n", version)
			}
		},
		RunE: func(*cobra.Command, []string) error {
			return syntaxErrorf("expected validate or generate")
		},
	}
	root.PersistentFlags().BoolVarP(&c.quiet, "quiet", "q", false, "suppress the heading and the result line")

	root.AddCommand(c.validateCmd())
	root.AddCommand(c.generateCmd())
	return root
}

func (c *cli) validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate [org|birth|d] (NUMBER | --repeat)",
		Aliases: []string{"v", "val"},
		Short:   "Validate one number, or numbers read from standard input",
		Long: `Validate a number of the given kind, or of any kind when the kind is omitted.

With --repeat, numbers are read from standard input until an empty line and
a result line is written for each of them. The exit code is the code of the
last result.

Example:
  nin validate 987654325
  nin validate birth 01020398767
  nin -q validate d --repeat < numbers.txt`,
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var kind nin.Kind
			if len(args) > 0 && startsWithLetter(args[0]) {
				k, err := nin.ParseKind(args[0])
				switch {
				case err == nil:
					kind = k
					args = args[1:]
				case len(args) == 2:
					return syntaxError{err}
				}
			}

			switch {
			case c.repeat && len(args) == 0:
				return c.repeatValidation(cmd.InOrStdin(), cmd.OutOrStdout(), kind)
			case !c.repeat && len(args) == 1:
				c.finish(cmd.OutOrStdout(), validate(args[0], kind))
				return nil
			default:
				return syntaxErrorf("expected either a number or --repeat")
			}
		},
	}
	cmd.Flags().BoolVarP(&c.repeat, "repeat", "r", false, "read numbers from standard input until an empty line")
	return cmd
}

func (c *cli) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "generate KIND [PATTERN | COUNT | FROM TO [female|male]]",
		Aliases: []string{"g", "gen"},
		Short:   "Generate random valid numbers",
		Long: `Generate random valid numbers of a kind, written one per line.

PATTERN is digits and ? wildcards of full length, e.g. 9???????? or 150185?????.
COUNT draws that many distinct numbers from the whole domain, which is slow.
FROM and TO (dd.mm.yyyy, 01.01.1854 through 31.12.2039) restrict the birth
date of birth numbers and D-numbers, optionally for one gender.

Example:
  nin generate org
  nin generate birth 5
  nin generate d 01.01.1990 31.12.1999 female`,
		Args: cobra.RangeArgs(1, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := nin.ParseKind(args[0])
			if err != nil {
				return syntaxError{err}
			}
			out := cmd.OutOrStdout()
			rest := args[1:]

			if len(rest) > 0 && kind.IsDateBased() {
				if from, err := norway.ParseDate(rest[0]); err == nil {
					return c.generateInRange(out, kind, from, rest[1:])
				}
			}

			switch {
			case len(rest) == 0:
				c.finish(out, c.generateCount(out, kind, 1))
			case len(rest) > 1:
				return syntaxErrorf("unexpected arguments %q", rest[1:])
			case isPattern(rest[0]):
				id, found, err := c.gen.OneRandomPattern(kind, rest[0])
				c.finish(out, writeOne(out, id, found, err))
			default:
				count, err := strconv.Atoi(rest[0])
				if err != nil || count <= 0 {
					return syntaxErrorf("%q is neither a pattern, a count nor a date", rest[0])
				}
				c.finish(out, c.generateCount(out, kind, count))
			}
			return nil
		},
	}
}

func (c *cli) generateInRange(out io.Writer, kind nin.Kind, from time.Time, rest []string) error {
	if len(rest) == 0 {
		return syntaxErrorf("a to date must follow the from date")
	}
	to, err := norway.ParseDate(rest[0])
	if err != nil {
		return syntaxError{err}
	}
	gender := nin.AnyGender
	if len(rest) > 1 {
		if len(rest) > 2 {
			return syntaxErrorf("unexpected arguments %q", rest[2:])
		}
		if gender, err = nin.ParseGender(rest[1]); err != nil {
			return syntaxError{err}
		}
	}
	id, found, err := c.gen.OneRandomInRange(kind, from, to, gender)
	c.finish(out, writeOne(out, id, found, err))
	return nil
}

func (c *cli) generateCount(out io.Writer, kind nin.Kind, count int) result {
	if count == 1 {
		return writeOne(out, c.gen.OneRandom(kind), true, nil)
	}
	ids := c.gen.ManyRandom(kind, count)
	if len(ids) == 0 {
		return noMatch
	}
	for _, id := range ids {
		fmt.Fprintln(out, id.Number())
	}
	return result{Code: apierrors.OK}
}

func (c *cli) repeatValidation(in io.Reader, out io.Writer, kind nin.Kind) error {
	r := result{Code: apierrors.OK}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}
		r = validate(line, kind)
		fmt.Fprintln(out, r)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading standard input: %w", err)
	}
	// Each line already carries its result.
	c.code = r.Code
	return nil
}

// finish records r as the exit code and prints it unless quiet.
func (c *cli) finish(out io.Writer, r result) {
	c.code = r.Code
	if !c.quiet {
		fmt.Fprintln(out, r)
	}
}

// validate checks number against kind, or against every kind when kind is
// zero, in which case the message names the kind found.
func validate(number string, kind nin.Kind) result {
	if kind == 0 {
		r := registry.ValidateAny(number)
		if r.Valid {
			return result{Code: apierrors.OK, Message: r.KindName}
		}
		return result{Code: apierrors.Code(r.Code), Message: r.Message}
	}
	r := registry.Validate(number, kind)
	if r.Valid {
		return result{Code: apierrors.OK}
	}
	return result{Code: apierrors.Code(r.Code), Message: r.Message}
}

func writeOne(out io.Writer, id nin.Identifier, found bool, err error) result {
	if err != nil {
		return resultOf(err)
	}
	if !found || id.IsZero() {
		return noMatch
	}
	fmt.Fprintln(out, id.Number())
	return result{Code: apierrors.OK}
}

// isPattern reports whether s consists of digits and at least one wildcard.
func isPattern(s string) bool {
	if !strings.ContainsRune(s, nin.Wildcard) {
		return false
	}
	for _, ch := range s {
		if ch != nin.Wildcard && (ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}

func startsWithLetter(s string) bool {
	if s == "" {
		return false
	}
	ch := s[0] | 0x20
	return ch >= 'a' && ch <= 'z'
}
