package main

import "github.com/jdscolam/mndp-firebase-auth/cmd"

func main() {
	cmd.Execute()
}
