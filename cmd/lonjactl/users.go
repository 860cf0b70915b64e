package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/auth"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/application/dto"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/internal/infrastructure/postgres"
	"github.com/JoseLopezGonzalez/lapesquerapp-frontend-sub007/pkg/jwt"
)

func (c *cli) newTokenCmd() *cobra.Command {
	var (
		secret  string
		userID  string
		email   string
		role    string
		minutes int
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Firma un JWT para llamar a la API sin login (integraciones, despliegues sin base de datos)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			issuer := "lonjas-api"
			if secret == "" || minutes == 0 {
				cfg, err := c.config()
				if err != nil {
					return err
				}
				if secret == "" {
					secret = cfg.JWT.Secret
				}
				if minutes == 0 {
					minutes = cfg.JWT.Expiration
				}
				issuer = cfg.JWT.Issuer
			}
			if role != jwt.RoleAdmin && role != jwt.RoleOperador {
				return fmt.Errorf("rol %q no soportado (%s|%s)", role, jwt.RoleAdmin, jwt.RoleOperador)
			}
			tok, err := jwt.Generate(secret, userID, email, role, issuer, minutes)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s\n", tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "secreto de firma (por defecto JWT_SECRET)")
	cmd.Flags().StringVar(&userID, "user-id", "lonjactl", "sujeto del token")
	cmd.Flags().StringVar(&email, "email", "", "email del token")
	cmd.Flags().StringVar(&role, "role", jwt.RoleOperador, "rol (admin|operador)")
	cmd.Flags().IntVar(&minutes, "exp", 0, "minutos de validez (por defecto JWT_EXPIRATION_MINUTES)")
	return cmd
}

func (c *cli) newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Imprime el hash bcrypt de una contraseña (sin argumento, la lee de stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var password string
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("leer contraseña: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if len(password) < auth.MinPasswordLength {
				return fmt.Errorf("la contraseña debe tener al menos %d caracteres", auth.MinPasswordLength)
			}
			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "%s\n", hash)
			return nil
		},
	}
}

func (c *cli) newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Usuarios de la API",
	}
	var in dto.RegisterRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Crea un usuario; sirve para dar de alta el primer admin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := c.pool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()
			uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{})
			user, err := uc.RegisterUser(ctx, in)
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "usuario %s (%s) creado con id %s\n", user.Email, user.Role, user.ID)
			return nil
		},
	}
	create.Flags().StringVar(&in.Email, "email", "", "email")
	create.Flags().StringVar(&in.Password, "password", "", "contraseña (mínimo 8 caracteres)")
	create.Flags().StringVar(&in.Name, "name", "", "nombre visible")
	create.Flags().StringVar(&in.Role, "role", jwt.RoleOperador, "rol (admin|operador)")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")
	cmd.AddCommand(create)
	return cmd
}
