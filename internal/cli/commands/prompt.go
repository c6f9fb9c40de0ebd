package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// errAborted is returned when the user declines a confirmation prompt.
var errAborted = errors.New("aborted")

// confirm asks a yes/no question on stdout and reads the answer from
// stdin. Anything other than y/yes declines.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
