package main

import (
	"fmt"
	"os"

	"github.com/nitintomar713/sacmtb-surya/internal/app"
	"github.com/nitintomar713/sacmtb-surya/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := app.New(cfg).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "application error: %v\n", err)
		os.Exit(1)
	}
}
