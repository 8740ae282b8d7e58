package cli

import "context"

// Theme toggles the UI theme between light and dark and persists the
// choice, so it survives restarts and logouts alike.
func (a *App) Theme(ctx context.Context) error {
	current, err := a.store.Theme(ctx)
	if err != nil {
		a.printf("error: %v\n", err)
		return err
	}

	next := "dark"
	if current == "dark" {
		next = "light"
	}

	if err := a.store.SetTheme(ctx, next); err != nil {
		a.printf("error: %v\n", err)
		return err
	}

	a.printf("Theme switched to %s.\n", next)
	return nil
}
