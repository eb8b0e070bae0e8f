package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"codestats/internal/languages"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示语言识别表：语言名称、扩展名以及无扩展名时匹配的文件名。
func newLanguageCmd(classifier *languages.Classifier) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示语言识别表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tFILENAMES"); err != nil {
				return err
			}

			for _, item := range classifier.Languages() {
				if _, err := fmt.Fprintf(writer, "%s\t%s\t%s\n",
					item.Name,
					joinOrDash(item.Extensions),
					joinOrDash(item.Basenames),
				); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}
