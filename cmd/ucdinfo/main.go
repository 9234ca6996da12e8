// ucdinfo prints Unicode Character Database records on the command
// line. Arguments are codepoints ("U+00DF", "0xDF", "DF") or literal
// characters; flags select name lookup, substring search, case
// folding, or the interactive browser.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/jusunglee/unicodeutil/internal/browse"
	"github.com/jusunglee/unicodeutil/internal/casefold"
	"github.com/jusunglee/unicodeutil/internal/dataset"
	"github.com/jusunglee/unicodeutil/internal/logger"
	"github.com/jusunglee/unicodeutil/internal/ucd"
)

var (
	codepointStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	charStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs_ := ff.NewFlagSet("ucdinfo")

	var (
		ucdDir      = fs_.StringLong("ucd-dir", "data", "directory containing UnicodeData.txt, Blocks.txt, CaseFolding.txt")
		name        = fs_.StringLong("name", "", "look up a character by name (UAX #44 loose matching)")
		partial     = fs_.StringLong("partial", "", "list characters whose name contains this fragment")
		fold        = fs_.StringLong("casefold", "", "case fold the given string and print the result")
		simple      = fs_.BoolLong("simple", "use simple one-to-one case folding")
		turkic      = fs_.BoolLong("turkic", "use Turkic dotted/dotless I mappings")
		interactive = fs_.BoolLong("interactive", "browse characters interactively")
	)

	if err := ff.Parse(fs_, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	ds, err := dataset.Load(context.Background(), *ucdDir)
	if err != nil {
		return fmt.Errorf("loading UCD tables: %w", err)
	}
	log.Debug("loaded UCD tables", "dir", *ucdDir, "characters", ds.Chars.Count())

	switch {
	case *interactive:
		return browse.Run(ds)

	case *fold != "":
		opts := casefold.Options{Simple: *simple, Turkic: *turkic}
		fmt.Println(ds.Folds.Fold(*fold, opts))
		return nil

	case *name != "":
		c, err := ds.Chars.ByName(*name)
		if err != nil {
			return fmt.Errorf("no character named %q", *name)
		}
		printCharacter(ds, c)
		return nil

	case *partial != "":
		matches := ds.Chars.ByPartialName(*partial)
		if len(matches) == 0 {
			return fmt.Errorf("no character name contains %q", *partial)
		}
		for _, c := range matches {
			fmt.Printf("%s  %s  %s\n",
				codepointStyle.Render(fmt.Sprintf("U+%04X", c.Codepoint)),
				charStyle.Render(string(c.Codepoint)),
				c.Name)
		}
		return nil
	}

	args := fs_.GetArgs()
	if len(args) == 0 {
		fmt.Printf("%s\n", ffhelp.Flags(fs_))
		return fmt.Errorf("a codepoint, character, or lookup flag is required")
	}

	for i, arg := range args {
		cp, err := parseArg(arg)
		if err != nil {
			return err
		}
		c, err := ds.Chars.ByCodepoint(cp)
		if err != nil {
			return fmt.Errorf("U+%04X: %w", cp, err)
		}
		if i > 0 {
			fmt.Println()
		}
		printCharacter(ds, c)
	}
	return nil
}

// parseArg accepts "U+00DF", "0xDF", bare hex "DF", or a literal
// single character. A one-character hex-looking argument like "F" is
// read as a codepoint.
func parseArg(s string) (rune, error) {
	hex := s
	upper := strings.ToUpper(s)
	if strings.HasPrefix(upper, "U+") || strings.HasPrefix(upper, "0X") {
		hex = s[2:]
	}
	if v, err := strconv.ParseUint(hex, 16, 32); err == nil && v <= 0x10FFFF {
		return rune(v), nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}
	return 0, fmt.Errorf("cannot interpret %q as a codepoint or character", s)
}

func printCharacter(ds *dataset.Dataset, c ucd.Character) {
	fmt.Printf("%s  %s\n", codepointStyle.Render(fmt.Sprintf("U+%04X", c.Codepoint)), charStyle.Render(string(c.Codepoint)))

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Printf("  %s %s\n", labelStyle.Render(fmt.Sprintf("%-16s", label)), value)
	}

	row("Name", c.Name)
	row("Category", c.Category)
	row("Combining", strconv.Itoa(c.Combining))
	row("Bidi", c.Bidi)
	if block, err := ds.Blocks.ByCodepoint(c.Codepoint); err == nil {
		row("Block", block)
	}
	if !c.Decomposition.IsZero() {
		parts := make([]string, 0, len(c.Decomposition.Runes)+1)
		if c.Decomposition.Tag != "" {
			parts = append(parts, c.Decomposition.Tag)
		}
		for _, r := range c.Decomposition.Runes {
			parts = append(parts, fmt.Sprintf("U+%04X", r))
		}
		row("Decomposition", strings.Join(parts, " "))
	}
	if c.Decimal != ucd.NoValue {
		row("Decimal", strconv.Itoa(c.Decimal))
	}
	if c.Digit != ucd.NoValue {
		row("Digit", strconv.Itoa(c.Digit))
	}
	if c.Numeric != nil {
		row("Numeric", c.Numeric.RatString())
	}
	if c.Mirrored {
		row("Mirrored", "yes")
	}
	row("Unicode 1 Name", c.Unicode1Name)
	if c.Upper != 0 {
		row("Uppercase", fmt.Sprintf("U+%04X", c.Upper))
	}
	if c.Lower != 0 {
		row("Lowercase", fmt.Sprintf("U+%04X", c.Lower))
	}
	if c.Title != 0 {
		row("Titlecase", fmt.Sprintf("U+%04X", c.Title))
	}
	row("UTF-8", fmt.Sprintf("% X", []byte(string(c.Codepoint))))
}
