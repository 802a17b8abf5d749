package main

import (
	"github.com/pagecap/pagecap/cmd"

	// Register the desktop platform backends.
	_ "github.com/pagecap/pagecap/internal/platform/desktop"
)

func main() {
	cmd.Execute()
}
