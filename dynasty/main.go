package main

import (
	"github.com/joho/godotenv"
	"github.com/tebeka/atexit"

	"github.com/famlab/dynasty/dynasty/cmd"
)

func main() {
	// A .env file can pre-seed any DYNASTY_* flag default. Missing files are
	// fine.
	_ = godotenv.Load()

	cmd.Execute()

	atexit.Exit(0)
}
