package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks yes/no questions on an interactive console. Only "y" or
// "yes" (case-insensitive) count as confirmation; anything else, including an
// empty line, declines.
//
// The input reader is shared across questions so buffered bytes are not lost
// between consecutive prompts.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) Confirm(target string) (bool, error) {
	fmt.Fprintf(p.out, "overwrite %s (yes/no)? ", target)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false, err
	}
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes", nil
}
