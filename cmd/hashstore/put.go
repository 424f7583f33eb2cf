package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/neosam/hashstore/hashio"
)

var putShowCID bool

func init() {
	putCmd.Flags().BoolVar(&putShowCID, "cid", false, "also print the value's CIDv1")
}

var putCmd = &cobra.Command{
	Use:   "put [file]",
	Short: "store a string value, read from a file or stdin, and print its hash",
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = os.Stdin
		if len(args) > 0 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}

		ctx, s, err := openStore()
		if err != nil {
			return err
		}

		h, err := hashio.Put(ctx, s, hashio.Str(string(data)))
		if err != nil {
			return err
		}
		fmt.Println(h)
		if putShowCID {
			c, err := cidFor(h)
			if err != nil {
				return err
			}
			fmt.Println(c)
		}
		return nil
	},
}
