package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neosam/hashstore/hashio"
	"github.com/neosam/hashstore/iolog"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "manage the hash-chained log of string entries",
}

var logPushCmd = &cobra.Command{
	Use:   "push <value>",
	Short: "append value as a new log entry and print its hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, s, err := openStore()
		if err != nil {
			return err
		}
		l, err := iolog.Open[hashio.Str](s, hashio.StrTypeHash(), hashio.DecodeStr)
		if err != nil {
			return err
		}
		h, err := l.Push(ctx, hashio.Str(args[0]))
		if err != nil {
			return err
		}
		fmt.Println(h)
		return nil
	},
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "print every entry from head to genesis, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, s, err := openStore()
		if err != nil {
			return err
		}
		l, err := iolog.Open[hashio.Str](s, hashio.StrTypeHash(), hashio.DecodeStr)
		if err != nil {
			return err
		}
		it := l.Items(ctx)
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			fmt.Println(string(v))
		}
		return it.Err()
	},
}

var logBackupHeadCmd = &cobra.Command{
	Use:   "backup-head",
	Short: "copy the current head pointer to a timestamped sibling file",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, s, err := openStore()
		if err != nil {
			return err
		}
		l, err := iolog.Open[hashio.Str](s, hashio.StrTypeHash(), hashio.DecodeStr)
		if err != nil {
			return err
		}
		dst, err := l.BackupHead(time.Now().UTC().Format("20060102T150405Z"))
		if err != nil {
			return err
		}
		fmt.Println(dst)
		return nil
	},
}

func init() {
	logCmd.AddCommand(logPushCmd)
	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logBackupHeadCmd)
}
