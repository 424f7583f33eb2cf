package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neosam/hashstore/hash"
	"github.com/neosam/hashstore/hashio"
)

var getCmd = &cobra.Command{
	Use:   "get <hash>",
	Short: "print the string value stored at hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := hash.FromHex(args[0])
		if err != nil {
			return err
		}
		ctx, s, err := openStore()
		if err != nil {
			return err
		}
		v, err := hashio.Get[hashio.Str](ctx, s, h, hashio.StrTypeHash(), hashio.DecodeStr)
		if err != nil {
			return err
		}
		fmt.Println(string(v))
		return nil
	},
}
