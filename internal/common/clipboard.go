package common

import (
	"github.com/atotto/clipboard"
)

func GetClipboardValue() (string, error) {
	value, err := clipboard.ReadAll()

	if err != nil {
		return "", err
	}

	return value, nil
}
