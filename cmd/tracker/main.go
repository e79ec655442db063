package main

import "github.com/sheikh-saqib/profit-distribution-tracker/internal/cli"

func main() {
	cli.Execute()
}
