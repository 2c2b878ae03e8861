// Package shell is the interactive numbered-menu front end to a session.
//
// The shell owns no editing state: every choice prompts for its
// parameters, calls the session once and prints the outcome. Input that
// does not parse is asked for again without reaching the session. The
// loop ends on choice 0 or at end of input.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ironsheep/image-editor/internal/imaging"
	"github.com/ironsheep/image-editor/internal/session"
)

// Defaults are the values used when a prompt is answered with Enter.
type Defaults struct {
	FontSize        float64
	ThumbnailWidth  int
	ThumbnailHeight int
	CollageColumns  int
	CollagePadding  int
}

// Shell runs the menu loop against one session.
type Shell struct {
	session  *session.Session
	in       *bufio.Reader
	out      io.Writer
	defaults Defaults

	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	dim     lipgloss.Style
}

// New creates a shell reading answers from in and writing to out.
func New(s *session.Session, in io.Reader, out io.Writer, defaults Defaults) *Shell {
	r := lipgloss.NewRenderer(out)
	return &Shell{
		session:  s,
		in:       bufio.NewReader(in),
		out:      out,
		defaults: defaults,
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#25A065")),
		success:  r.NewStyle().Foreground(lipgloss.Color("2")),
		failure:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		dim:      r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Run shows the menu until the user exits, input ends or ctx is done.
func (sh *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sh.showMenu()
		choice, err := sh.readLine("Enter your choice: ")
		if err != nil {
			return sh.endOfInput(err)
		}

		if choice == "0" {
			sh.println("Exiting...")
			return nil
		}

		item, ok := lookup(choice)
		if !ok {
			sh.println("Invalid choice. Please try again.")
		} else if err := item.run(sh); err != nil {
			return sh.endOfInput(err)
		}

		if _, err := sh.readLine("\nPress Enter to continue..."); err != nil {
			return sh.endOfInput(err)
		}
	}
}

func (sh *Shell) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		sh.println("")
		return nil
	}
	return err
}

func (sh *Shell) showMenu() {
	sh.println("")
	sh.println(sh.title.Render("==== Image Editor ===="))
	for _, item := range menu {
		sh.printf("%s. %s\n", item.key, item.label)
	}
	sh.println("0. Exit")
}

// report prints the outcome of a session call.
func (sh *Shell) report(err error, format string, args ...any) {
	if err != nil {
		sh.println(sh.failure.Render("Error: " + err.Error()))
		return
	}
	sh.println(sh.success.Render(fmt.Sprintf(format, args...)))
}

func (sh *Shell) println(s string) { fmt.Fprintln(sh.out, s) }

func (sh *Shell) printf(format string, args ...any) { fmt.Fprintf(sh.out, format, args...) }

// readLine prints prompt and returns the next line without its newline.
// A final line without a newline is returned before io.EOF.
func (sh *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(sh.out, prompt)
	line, err := sh.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptInt asks until it gets an integer. def is used for an empty
// answer when non-nil.
func (sh *Shell) promptInt(prompt string, def *int) (int, error) {
	for {
		line, err := sh.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if line == "" && def != nil {
			return *def, nil
		}
		v, err := strconv.Atoi(line)
		if err == nil {
			return v, nil
		}
		sh.println(sh.dim.Render("Invalid value. Please enter an integer."))
	}
}

// promptFloat asks until it gets a number.
func (sh *Shell) promptFloat(prompt string, def *float64) (float64, error) {
	for {
		line, err := sh.readLine(prompt)
		if err != nil {
			return 0, err
		}
		if line == "" && def != nil {
			return *def, nil
		}
		v, err := strconv.ParseFloat(line, 64)
		if err == nil {
			return v, nil
		}
		sh.println(sh.dim.Render("Invalid value. Please enter a number."))
	}
}

// promptColor asks until it gets a colour; Enter means black.
func (sh *Shell) promptColor(prompt string) (color.NRGBA, error) {
	for {
		line, err := sh.readLine(prompt)
		if err != nil {
			return color.NRGBA{}, err
		}
		c, err := imaging.ParseColor(line)
		if err == nil {
			return c, nil
		}
		sh.println(sh.dim.Render(err.Error()))
	}
}

func ptr[T any](v T) *T { return &v }
