package main

import (
	"fmt"
	"os"

	"jsolano/mail-ledger/cmd/categorize"
	"jsolano/mail-ledger/cmd/fetch"
	"jsolano/mail-ledger/cmd/process"
	"jsolano/mail-ledger/cmd/root"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(fetch.Cmd)
	root.Cmd.AddCommand(process.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
