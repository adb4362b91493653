package app

import (
	"context"
	"fmt"
	"time"

	"github.com/inkwellbooks/bookshop-login/internal/login/domain"
)

// bootstrapAdmin seeds the first admin account when the database is empty and
// bootstrap credentials are configured. An already-populated database is left
// alone so the seed credentials can stay in the environment across restarts.
func (app *Application) bootstrapAdmin(ctx context.Context) error {
	if app.cfg.BootstrapAdminUsername == "" {
		return nil
	}

	empty, err := app.db.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if !empty {
		app.logger.Debug("skipping admin bootstrap, users already exist")
		return nil
	}

	user, err := app.userService.Register(
		ctx,
		app.cfg.BootstrapAdminUsername,
		app.cfg.BootstrapAdminPassword,
		domain.RoleAdmin,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	app.logger.Info("bootstrap admin account created", "username", user.Username)
	return nil
}
