package main

import "github.com/soocke/parking-watch-go/cmd"

func main() {
	cmd.Execute()
}
