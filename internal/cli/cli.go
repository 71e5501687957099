package cli

import (
	"bufio"
	"fmt"
	"io"

	"knights/internal/board"
	"knights/internal/search"
)

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	knightBg string
	knightFg string
	reset    string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		knightBg: "\033[48;5;94m", // Brown
		knightFg: "\033[97m",
		reset:    "\033[0m",
	},
	ThemeGreen: {
		knightBg: "\033[48;5;22m", // Dark green
		knightFg: "\033[97m",
		reset:    "\033[0m",
	},
	ThemeGray: {
		knightBg: "\033[48;5;240m", // Dark gray
		knightFg: "\033[97m",
		reset:    "\033[0m",
	},
}

// CLI reads whitespace separated tokens and writes reports to a terminal
type CLI struct {
	input  *bufio.Scanner
	output io.Writer
	theme  ColorTheme
}

func New(input io.Reader, output io.Writer) *CLI {
	scanner := bufio.NewScanner(input)
	scanner.Split(bufio.ScanWords)
	return &CLI{
		input:  scanner,
		output: output,
		theme:  ThemeOff,
	}
}

// ReadToken returns the next whitespace separated token.
// io.EOF is returned once input is exhausted.
func (c *CLI) ReadToken() (string, error) {
	if !c.input.Scan() {
		if err := c.input.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.input.Text(), nil
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) Theme() ColorTheme {
	return c.theme
}

// marker returns the knight symbol wrapped in the theme's colors
func (c *CLI) marker() string {
	t := themes[c.theme]
	return t.knightBg + t.knightFg + board.KnightMarker + t.reset
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(err.Error())
}

func (c *CLI) ShowPrompt(prompt string) {
	fmt.Fprint(c.output, prompt)
}

// ShowReport prints the path summary and one board per square
func (c *CLI) ShowReport(result search.Result) {
	fmt.Fprint(c.output, board.ReportMarked(result, c.marker()))
}
