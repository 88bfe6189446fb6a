package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func ReadIntFromFile(path string) (value int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, err
	}
	text := strings.TrimSpace(string(data))
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	return strconv.Atoi(text)
}

func WriteIntToFile(value int, path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(value)), 0o644)
}
