package auth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

var ErrNoCredentials = errors.New("no credentials configured")

// StaticCredentials hands out the same credentials every time.
type StaticCredentials Credentials

func (s StaticCredentials) Credentials(_ context.Context) (Credentials, error) {
	if s.Email == "" {
		return Credentials{}, ErrNoCredentials
	}

	return Credentials(s), nil
}

// TerminalPrompter asks for an email on In and for a password that is read
// without echo when In is a terminal.
type TerminalPrompter struct {
	In         io.Reader
	Out        io.Writer
	ReadSecret func() ([]byte, error)

	reader *bufio.Reader
}

func NewTerminalPrompter() *TerminalPrompter {
	p := &TerminalPrompter{
		In:  os.Stdin,
		Out: os.Stderr,
	}

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		p.ReadSecret = func() ([]byte, error) {
			return term.ReadPassword(fd)
		}
	}

	return p
}

func (p *TerminalPrompter) Credentials(ctx context.Context) (Credentials, error) {
	if err := ctx.Err(); err != nil {
		return Credentials{}, err
	}

	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}

	fmt.Fprint(p.Out, "Email: ")
	email, err := p.readLine()
	if err != nil {
		return Credentials{}, err
	}

	fmt.Fprint(p.Out, "Password (not shown): ")

	var password string
	if p.ReadSecret != nil {
		secret, err := p.ReadSecret()
		fmt.Fprintln(p.Out)
		if err != nil {
			return Credentials{}, errors.Wrap(err, "could not read password")
		}
		password = string(secret)
	} else {
		password, err = p.readLine()
		if err != nil {
			return Credentials{}, err
		}
	}

	return Credentials{
		Email:    email,
		Password: password,
	}, nil
}

func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}
