package main

import (
	"github.com/JulienBalestra/dry/pkg/exit"
	root "github.com/JulienBalestra/taxestimator/cmd"
)

func main() {
	rootCommand := root.NewRootCommand()
	err := rootCommand.Execute()
	exit.Exit(err)
}
