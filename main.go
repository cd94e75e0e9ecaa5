package main

import "github.com/leshihua/fvens/cmd"

func main() {
	cmd.Execute()
}
