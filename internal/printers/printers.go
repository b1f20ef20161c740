package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
)

var defaultPrinters = Printers{}

type IPrinters interface {
	Confirm(message string) bool
}

type Printers struct {
	// Stdin and Stdout default to the process terminal when nil.
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

// NewPrinters returns new printers struct
func NewPrinters() *Printers {
	return &Printers{}
}

func (p Printers) Confirm(message string) bool {
	validate := func(input string) error {
		input = strings.ToLower(strings.TrimSpace(input))
		if input != "y" && input != "n" {
			return fmt.Errorf("wrong input %s, was expecting `y` or `n`", input)
		}

		return nil
	}

	msg := message + " Press (y/n)"
	prompt := promptui.Prompt{
		Label:    msg,
		Validate: validate,
		Stdin:    p.Stdin,
		Stdout:   p.Stdout,
	}

	result, err := prompt.Run()
	if err != nil {
		return false
	}
	input := strings.ToLower(strings.TrimSpace(result))

	return input == "y"
}

// Confirm prompt a confirmation message
//
// Return true if the user entered Y/y and false if entered n/N
func Confirm(message string) bool {
	return defaultPrinters.Confirm(message)
}

// Static answers every confirmation with the same value. It is used when
// no terminal is attached and by tests.
type Static bool

func (s Static) Confirm(string) bool {
	return bool(s)
}
