package client

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

type PromptOpt func(*promptConfig)

// WithValidator rejects answers for which v returns false, showing its message.
func WithValidator(v promptValidator) PromptOpt {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

// WithMaxTries gives up after i rejected answers. Zero retries forever.
func WithMaxTries(i int) PromptOpt {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes prompt to out and reads one answer line from in, asking
// again while the validator rejects it.
func Prompt(in *bufio.Reader, out io.Writer, prompt string, opts ...PromptOpt) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		_, err := io.WriteString(out, prompt)
		if err != nil {
			return "", err
		}

		input, err := in.ReadString('\n')
		if err != nil && (err != io.EOF || input == "") {
			return "", err
		}
		input = strings.TrimRight(input, "\r\n")

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if _, err := io.WriteString(out, msg); err != nil {
					return "", err
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					return "", fmt.Errorf("no valid answer after %d tries", tries)
				}

				continue
			}
		}

		return input, nil
	}
}

// PromptYN asks a yes/no question.
func PromptYN(in *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	str, err := Prompt(in, out, prompt, WithMaxTries(3), WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(strings.TrimSpace(str)) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
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
