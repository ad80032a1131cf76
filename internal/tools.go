package internal

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompter reads line-oriented answers from a connection. It owns the read
// buffer for the life of the session so nothing typed ahead is lost between
// prompts.
type Prompter struct {
	rw io.ReadWriter
	br *bufio.Reader
}

func NewPrompter(rw io.ReadWriter) *Prompter {
	return &Prompter{rw: rw, br: bufio.NewReader(rw)}
}

// Write sends text to the connection.
func (p *Prompter) Write(s string) error {
	_, err := io.WriteString(p.rw, s)
	return err
}

// ReadLine returns the next line without its line ending.
func (p *Prompter) ReadLine() (string, error) {
	line, err := p.br.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *Prompter) Prompt(prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		if err := p.Write(prompt); err != nil {
			return "", err
		}

		input, err := p.ReadLine()
		if err != nil {
			return "", err
		}

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				_ = p.Write(msg)

				tries++
				if config.tries > 0 && config.tries == tries {
					_ = p.Write("Too many tries.\n")
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return input, nil
	}
}

func (p *Prompter) PromptYN(prompt string) (bool, error) {
	str, err := p.Prompt(prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(strings.TrimSpace(str)) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "Enter 'yes' or 'no'.\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(str)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
