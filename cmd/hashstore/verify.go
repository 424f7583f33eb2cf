package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neosam/hashstore/hashio"
	"github.com/neosam/hashstore/iolog"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "walk the log from head to genesis, checking every entry's content against its own hash",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, s, err := openStore()
		if err != nil {
			return err
		}
		l, err := iolog.Open[hashio.Str](s, hashio.StrTypeHash(), hashio.DecodeStr)
		if err != nil {
			return err
		}
		if err := iolog.Verify(ctx, l); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}
