package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"desaweb/internal/model"
	"desaweb/internal/service"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newUserCreateCmd(), newUserPasswordCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var in service.CreateUserInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin or editor account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.ValidRole(in.Role) {
				return fmt.Errorf("role must be %q or %q", model.RoleAdmin, model.RoleEditor)
			}
			if in.Name == "" {
				in.Name = in.Username
			}
			if in.Password == "" {
				pw, err := readPassword(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				in.Password = pw
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(a)

			user, err := a.Users.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.Log.Info("user created", zap.Uint("user_id", user.ID), zap.String("role", user.Role))
			printf(cmd.OutOrStdout(), "Created %s %q (id %d)\n", user.Role, user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "Login name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Name, "name", "", "Display name (defaults to the username)")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (prompted if omitted)")
	cmd.Flags().StringVar(&in.Role, "role", model.RoleEditor, "Role: admin or editor")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newUserPasswordCmd() *cobra.Command {
	var (
		id       uint
		password string
	)

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Reset the password of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := readPassword(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				password = pw
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer closeApp(a)

			if err := a.Users.ChangePassword(cmd.Context(), id, password); err != nil {
				return err
			}
			a.Log.Info("password reset", zap.Uint("user_id", id))
			printf(cmd.OutOrStdout(), "Password updated for user %d\n", id)
			return nil
		},
	}

	cmd.Flags().UintVar(&id, "id", 0, "User ID")
	cmd.Flags().StringVar(&password, "password", "", "New password (prompted if omitted)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

// readPassword reads one line from r after printing a prompt to w.
func readPassword(r io.Reader, w io.Writer) (string, error) {
	printf(w, "Password: ")
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	pw := strings.TrimSpace(line)
	if pw == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return pw, nil
}
