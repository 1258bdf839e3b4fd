package main

import (
	"os"

	"supaportal/backend/cmd/supactl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
