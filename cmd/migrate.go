package cmd

import (
	"database/sql"

	"github.com/vibast-solutions/ms-go-calendar/config"
	"github.com/vibast-solutions/ms-go-calendar/db"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		conn, err := sql.Open("mysql", cfg.DSN())
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Ping(); err != nil {
			return err
		}

		if err := db.RunMigrations(cmd.Context(), conn); err != nil {
			return err
		}

		logrus.Info("Migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
