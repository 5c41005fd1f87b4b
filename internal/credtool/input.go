package credtool

import (
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/credvault/internal/common"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptSecret prints prompt to w and reads a line from the terminal
// without echo.
func promptSecret(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", prompt, err)
	}
	defer common.WipeByteArray(b)
	return string(b), nil
}

// secretOrPrompt returns value when set, otherwise prompts for it.
func secretOrPrompt(w io.Writer, value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	s, err := promptSecret(w, prompt)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%s must not be empty", prompt)
	}
	return s, nil
}
