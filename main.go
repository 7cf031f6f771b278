package main

import (
	_ "embed"

	"github.com/quillnotes/quill-notes-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
