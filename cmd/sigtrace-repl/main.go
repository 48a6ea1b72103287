package main

import (
	"os"

	"sigtrace/repl"
)

func main() {
	repl.Start(os.Stdin)
}
