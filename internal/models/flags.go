package models

import (
	"github.com/spf13/pflag"
)

// FlagStruct describes a flag shared by several commands.
type FlagStruct struct {
	Label        string
	Short        string
	Description  string
	DefaultValue string

	// Bool registers a boolean flag; DefaultValue "true" turns it on.
	Bool bool
}

// Register adds the flag to fs.
func (f FlagStruct) Register(fs *pflag.FlagSet) {
	if f.Bool {
		fs.BoolP(f.Label, f.Short, f.DefaultValue == "true", f.Description)
		return
	}
	fs.StringP(f.Label, f.Short, f.DefaultValue, f.Description)
}

// RegisterAll adds every flag in flags to fs.
func RegisterAll(fs *pflag.FlagSet, flags []FlagStruct) {
	for _, f := range flags {
		f.Register(fs)
	}
}
