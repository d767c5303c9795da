package commands

import (
	"context"
	"fmt"
)

type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	services, err := buildServices(globals)
	if err != nil {
		return err
	}

	services.Auth.Logout(ctx)
	fmt.Println("Signed out")
	return nil
}
