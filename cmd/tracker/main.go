package main

import "github.com/nhle/meeting-tracker/internal/cli"

func main() {
	cli.Execute()
}
