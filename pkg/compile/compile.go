// Package compile hands a generated .tex document to an external
// typesetting command such as pdflatex.
//
// The command line is split with shell quoting rules, so
//
//	latexmk -pdf -jobname='tree out'
//
// runs latexmk with two arguments followed by the document's file name. The
// command runs in the document's directory, so its output files land next
// to the document.
package compile

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	sq "github.com/kballard/go-shellquote"

	"github.com/matzehuels/stltree/pkg/errors"
)

// tailLines is how many lines of output a failure error carries.
const tailLines = 10

// Compiler runs a typesetting command on documents.
type Compiler struct {
	words  []string
	logger *log.Logger
}

// New parses command. It fails if the command is empty or badly quoted.
func New(command string, logger *log.Logger) (*Compiler, error) {
	words, err := sq.Split(command)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "compile command %q", command)
	}
	if len(words) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no valid compile command: %q", command)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Compiler{words: words, logger: logger}, nil
}

// Program returns the executable name.
func (c *Compiler) Program() string {
	return c.words[0]
}

// Compile runs the command with texPath's base name appended, in texPath's
// directory. Output is logged at debug level; on failure the last lines are
// included in the error.
func (c *Compiler) Compile(ctx context.Context, texPath string) error {
	abs, err := filepath.Abs(texPath)
	if err != nil {
		return err
	}
	args := append(append([]string{}, c.words[1:]...), filepath.Base(abs))
	cmd := exec.CommandContext(ctx, c.words[0], args...)
	cmd.Dir = filepath.Dir(abs)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	c.logger.Info("compiling", "command", sq.Join(append([]string{c.words[0]}, args...)...), "dir", cmd.Dir)
	runErr := cmd.Run()

	lines := splitLines(out.String())
	for _, line := range lines {
		c.logger.Debug(line, "program", c.words[0])
	}
	if runErr != nil {
		if ctx.Err() != nil {
			return errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "%s", c.words[0])
		}
		if len(lines) > tailLines {
			lines = lines[len(lines)-tailLines:]
		}
		return errors.Wrap(errors.ErrCodeInternal, runErr, "%s failed:\n%s", c.words[0], strings.Join(lines, "\n"))
	}
	return nil
}

// OutputPath returns the PDF a LaTeX engine produces for texPath.
func OutputPath(texPath string) string {
	return strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pdf"
}

func splitLines(s string) []string {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if line := strings.TrimRight(sc.Text(), " \r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// String returns the command line.
func (c *Compiler) String() string {
	return sq.Join(c.words...)
}
