package cmd

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-calendar/app/entity"
	"github.com/vibast-solutions/ms-go-calendar/app/repository"
	"github.com/vibast-solutions/ms-go-calendar/config"
	"github.com/vibast-solutions/ms-go-calendar/db"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create sample users and events",
	Long:  `Populate the database with two demo accounts and a handful of events for local development.`,
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

		return seed(cmd.Context(), conn)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedEvent struct {
	title       string
	description string
	date        string
	importance  entity.Importance
}

func seed(ctx context.Context, conn *sql.DB) error {
	userRepo := repository.NewUserRepository(conn)
	eventRepo := repository.NewEventRepository(conn)

	users := []struct {
		email    string
		password string
		events   []seedEvent
	}{
		{
			email:    "john@example.com",
			password: "password123",
			events: []seedEvent{
				{"Team Meeting", "Weekly team sync", "2024-03-20T10:00:00Z", entity.ImportanceNormal},
				{"Project Deadline", "Submit final project deliverables", "2024-03-25T17:00:00Z", entity.ImportanceCritical},
			},
		},
		{
			email:    "alice@example.com",
			password: "password456",
			events: []seedEvent{
				{"Doctor Appointment", "Annual checkup", "2024-03-22T14:30:00Z", entity.ImportanceImportant},
				{"Birthday Party", "Friend's birthday celebration", "2024-03-24T19:00:00Z", entity.ImportanceNormal},
			},
		},
	}

	for _, u := range users {
		existing, err := userRepo.FindByEmail(ctx, u.email)
		if err != nil {
			return err
		}
		if existing != nil {
			logrus.WithField("email", u.email).Info("User already seeded, skipping")
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		now := time.Now()
		user := &entity.User{
			Email:        u.email,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}

		for _, ev := range u.events {
			date, err := time.Parse(time.RFC3339, ev.date)
			if err != nil {
				return err
			}

			if err := eventRepo.Create(ctx, &entity.Event{
				UserID:      user.ID,
				Title:       ev.title,
				Description: sql.NullString{String: ev.description, Valid: true},
				Date:        date,
				Importance:  ev.importance,
				CreatedAt:   now,
				UpdatedAt:   now,
			}); err != nil {
				return err
			}
		}

		logrus.WithFields(logrus.Fields{
			"email":  u.email,
			"events": len(u.events),
		}).Info("Seeded user")
	}

	return nil
}
