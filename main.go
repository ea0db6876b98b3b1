package main

import (
	"log"

	"github.com/thiagokokada/bisect-go/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("bisect-go: %v", err)
	}
}
