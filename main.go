package main

import "github.com/sundew-project/sundew/cmd"

func main() {
	cmd.Execute()
}
