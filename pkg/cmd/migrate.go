package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/agrivault/pkg/configs"
	"github.com/yeisme/agrivault/pkg/internal/model"
	"github.com/yeisme/agrivault/pkg/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "run database schema migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configs.InitConfig(configPath); err != nil {
			return fmt.Errorf("init config: %w", err)
		}

		mgr, err := storage.Init(cmd.Context())
		if err != nil {
			return fmt.Errorf("init storage: %w", err)
		}

		if err := mgr.GetDBClient().GetDB().AutoMigrate(
			&model.Book{},
			&model.Category{},
			&model.Review{},
			&model.SubscriptionPlan{},
			&model.UserSubscription{},
			&model.WalletTransaction{},
			&model.Curriculum{},
			&model.WebsiteContent{},
		); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "migration completed")

		return nil
	},
}

// registerMigrateCommands 注册数据库迁移命令.
func registerMigrateCommands() {
	rootCmd.AddCommand(migrateCmd)
}
