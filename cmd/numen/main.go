package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/aguiarsc/numen/internal/commands"
)

func main() {
	if err := commands.New().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "numen: %v\n", err)
		os.Exit(1)
	}
}
