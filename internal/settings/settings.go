// Package settings stores user preferences that live outside the task
// model, such as the UI theme. It is owned by the coordinating layer; the
// task-list model never touches these keys.
package settings

import (
	"context"
	"errors"
	"fmt"

	"tasklist/internal/model"
	"tasklist/internal/persist"
)

const keyTheme = "theme"

var ErrInvalidTheme = errors.New("invalid theme")

type Store struct {
	adapter *persist.Adapter
}

func New(adapter *persist.Adapter) *Store {
	return &Store{adapter: adapter}
}

// Theme returns the stored theme, defaulting to light when absent or
// unreadable.
func (s *Store) Theme(ctx context.Context) model.Theme {
	var theme model.Theme
	if s.adapter.Load(ctx, keyTheme, &theme) && theme.IsValid() {
		return theme
	}
	return model.ThemeLight
}

func (s *Store) SetTheme(ctx context.Context, theme model.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: %q must be %q or %q", ErrInvalidTheme, theme, model.ThemeLight, model.ThemeDark)
	}
	s.adapter.Save(ctx, keyTheme, theme)
	return nil
}
