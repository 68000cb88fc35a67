package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	app := newApp(os.Stdout, os.Stderr, nil)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
