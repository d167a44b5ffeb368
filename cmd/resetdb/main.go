// Command resetdb wipes the shop database. Every bill, inventory row
// and setting is lost, so it demands a typed confirmation first.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kiranapos/kirana/internal/config"
)

const confirmPhrase = "delete everything"

func main() {
	cfg := config.Load()

	fmt.Printf("This deletes the database at %s, including all saved bills.\n", cfg.DBPath)
	fmt.Printf("Type %q to continue: ", confirmPhrase)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(os.Stderr, "aborted: could not read confirmation")
		os.Exit(1)
	}
	if strings.TrimSpace(line) != confirmPhrase {
		fmt.Fprintln(os.Stderr, "aborted: confirmation did not match")
		os.Exit(1)
	}

	removed := false
	for _, path := range []string{cfg.DBPath, cfg.DBPath + "-wal", cfg.DBPath + "-shm"} {
		err := os.Remove(path)
		switch {
		case err == nil:
			removed = true
		case os.IsNotExist(err):
		default:
			fmt.Fprintf(os.Stderr, "failed to remove %s: %v\n", path, err)
			os.Exit(1)
		}
	}

	if !removed {
		fmt.Println("nothing to remove; database did not exist")
		return
	}
	fmt.Println("database removed; it will be recreated on next startup")
}
