package main

import (
	"os"

	"github.com/abhisek/quizter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
