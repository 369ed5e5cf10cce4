package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-xop/cmd/xopdump/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
