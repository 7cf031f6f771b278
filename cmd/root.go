// Package cmd 实现命令行入口
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDefault string

var rootCmd = &cobra.Command{
	Use:   "quill-notes-service",
	Short: "Quill Notes Service",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute 运行根命令，c 为内嵌的默认配置内容
func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
