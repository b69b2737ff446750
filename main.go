package main

import (
	"github.com/khoward/notionbridge/cmd"
)

func main() {
	cmd.Execute()
}
