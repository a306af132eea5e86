package main

import (
	_ "embed"

	"github.com/jamwt/anon-notes-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
