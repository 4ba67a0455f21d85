package main

import "github.com/vietdv277/aec/cmd"

func main() {
	cmd.Execute()
}
