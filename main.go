package main

import "github.com/khanhnv2901/pwcheck/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
