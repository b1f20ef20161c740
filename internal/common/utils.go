/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>
*/
package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/sanix-darker/zreview/internal/core"
)

// LogError: to print an error message
func LogError(w io.Writer, message string) {
	fmt.Fprintf(w, "[x] %s\n", message)
}

// LogWarn: for conditions that do not stop the run
func LogWarn(w io.Writer, message string) {
	fmt.Fprintf(w, "[!] %s\n", message)
}

// LogInfo: for a simple logging info
func LogInfo(
	w io.Writer,
	message string,
	callback func(),
) {
	fmt.Fprintf(w, "%s\n", message)

	// for a given callback
	if callback != nil {
		callback()
	}
}

// LogDebug only prints when debug is on.
func LogDebug(w io.Writer, debug bool, message string) {
	if debug {
		fmt.Fprintf(w, "> %s\n", message)
	}
}

// GetArgByKey get a string flag value, empty when the flag is unknown
func GetArgByKey(key string, cmdFlags *pflag.FlagSet) string {
	value, err := cmdFlags.GetString(key)
	if err != nil {
		return ""
	}
	return value
}

// WriteFileAtomic writes data next to path then renames it into place, so
// readers never see a partial file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return core.IOError(path, "failed to create output file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return core.IOError(path, "failed to write output file", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return core.IOError(path, "failed to write output file", err)
	}
	if err := tmp.Close(); err != nil {
		return core.IOError(path, "failed to write output file", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return core.IOError(path, "failed to write output file", err)
	}
	return nil
}
