package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/roomescape-service/config"
	"github.com/Eursukkul/roomescape-service/internal/auth"
	"github.com/Eursukkul/roomescape-service/internal/models"
	"github.com/Eursukkul/roomescape-service/internal/repository"
	"github.com/Eursukkul/roomescape-service/internal/service"
	"github.com/Eursukkul/roomescape-service/pkg/database"
	"github.com/spf13/cobra"
)

func newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage members",
	}
	cmd.AddCommand(newMemberAddCmd())
	return cmd
}

func newMemberAddCmd() *cobra.Command {
	var (
		name, email, password string
		admin                 bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a member who can log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" || password == "" {
				return errors.New("--name, --email and --password are required")
			}
			cfg := config.Load()

			db, err := database.NewPostgresDB(cfg.DSN())
			if err != nil {
				return err
			}

			tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.AccessTokenTTLMin)*time.Minute)
			svc := service.NewMemberService(repository.NewMemberRepository(db), tokens)

			role := models.RoleUser
			if admin {
				role = models.RoleAdmin
			}
			member, err := svc.Register(cmd.Context(), name, email, password, role)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "member %d created: %s <%s> %s\n", member.ID, member.Name, member.Email, member.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin role")
	return cmd
}
