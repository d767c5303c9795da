package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/classpilot/classpilot-go/internal/service"
)

type LoginCmd struct {
	Email    string `help:"Account email" required:""`
	Password string `help:"Account password (prompted when omitted)" env:"CLASSPILOT_PASSWORD"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	services, err := buildServices(globals)
	if err != nil {
		return err
	}

	password := l.Password
	if password == "" {
		password, err = promptSecret("Password: ")
		if err != nil {
			return err
		}
	}

	outcome, err := services.Auth.SignIn(ctx, service.SignInRequest{
		Email:    l.Email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	if outcome.RequiresOTP {
		fmt.Printf("A verification code was sent to %s\n", l.Email)
		otp, err := prompt("Code: ")
		if err != nil {
			return err
		}

		user, err := services.Auth.VerifyLoginOTP(ctx, service.VerifyOTPRequest{
			Email: l.Email,
			OTP:   otp,
		})
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		fmt.Printf("Signed in as %s (%s)\n", user.FullName(), user.Role)
		return nil
	}

	fmt.Printf("Signed in as %s (%s)\n", outcome.User.FullName(), outcome.User.Role)
	return nil
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret reads a line without echoing it. Falls back to a plain line
// read when stdin is not a terminal, so piped input still works.
func promptSecret(label string) (string, error) {
	fmt.Print(label)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt("")
	}
	secret, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}
