package commands

import (
	"context"
	"fmt"
)

type ProfileCmd struct{}

func (p *ProfileCmd) Run(ctx context.Context, globals *Globals) error {
	services, err := buildServices(globals)
	if err != nil {
		return err
	}

	result, err := services.User.Profile(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	user := result.Data
	fmt.Printf("%s\n", user.FullName())
	fmt.Printf("  email:  %s\n", user.Email)
	fmt.Printf("  role:   %s\n", user.Role)
	if user.SchoolName != "" {
		fmt.Printf("  school: %s\n", user.SchoolName)
	}
	return nil
}
