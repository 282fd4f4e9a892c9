package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrlokans/palindromes/internal/palindrome"
)

type CheckCommand struct {
	Text     string
	Language string

	out io.Writer
}

func NewCheckCommand() *CheckCommand {
	return &CheckCommand{out: os.Stdout}
}

func (cmd *CheckCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("check", flag.ExitOnError)

	fs.StringVar(&cmd.Text, "text", "", "Text to check (may also be given as trailing arguments)")
	fs.StringVar(&cmd.Language, "lang", string(palindrome.DefaultLanguage), "Language rules to apply: EN or ES")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s check [options] [text]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Check whether a text is a palindrome without storing the result.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s check -text \"Able was I ere I saw Elba\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s check -lang ES Dábale arroz a la zorra el abad\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Text == "" {
		cmd.Text = strings.Join(fs.Args(), " ")
	}
	if cmd.Text == "" {
		fs.Usage()
		return fmt.Errorf("text is required")
	}

	return nil
}

func (cmd *CheckCommand) Run() error {
	lang, err := palindrome.ParseLanguage(cmd.Language)
	if err != nil {
		return err
	}

	verdict := "is not a palindrome"
	if palindrome.IsPalindrome(cmd.Text, lang) {
		verdict = "is a palindrome"
	}

	fmt.Fprintf(cmd.out, "%q %s (%s)\n", cmd.Text, verdict, lang)
	return nil
}
