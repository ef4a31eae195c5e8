package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/agrivault/pkg/client"
	"github.com/yeisme/agrivault/pkg/configs"
)

var (
	uploadBucket  string
	uploadFolder  string
	uploadOwnerID string

	uploadCmd = &cobra.Command{
		Use:   "upload <file>",
		Short: "upload a local file through the gateway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configs.InitConfig(configPath); err != nil {
				return fmt.Errorf("init config: %w", err)
			}

			cc := configs.GetConfig().Client
			c := client.New(client.Config{
				BaseURL:        cc.BaseURL,
				Timeout:        cc.GetTimeout(),
				MaxRetries:     cc.MaxRetries,
				RetryBaseDelay: cc.GetRetryBaseDelay(),
			})

			result, err := c.Upload(cmd.Context(), args[0], client.UploadOptions{
				Bucket:  uploadBucket,
				Folder:  uploadFolder,
				OwnerID: uploadOwnerID,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.URL)

			return nil
		},
	}
)

// registerUploadCommands 注册上传客户端命令.
func registerUploadCommands() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&uploadBucket, "bucket", "b", "", "target bucket (required)")
	uploadCmd.Flags().StringVarP(&uploadFolder, "folder", "f", "", "folder prefix inside the bucket")
	uploadCmd.Flags().StringVar(&uploadOwnerID, "owner", "", "owner segment of the storage key")

	_ = uploadCmd.MarkFlagRequired("bucket")
}
