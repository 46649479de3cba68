package main

import "github.com/gagarinchain/claimnet/cmd"

func main() {
	cmd.Execute()
}
