package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/msclient/internal/client/client"
)

// Profile fetches and prints a member's public profile.
func (a *App) Profile(ctx context.Context, name string) error {
	p, err := a.profileService.Profile(ctx, name)
	if err != nil {
		if client.IsStatus(err, http.StatusNotFound) {
			fmt.Fprintf(a.out, "No such member: %s\n", name)
		} else {
			fmt.Fprintf(a.out, "Could not load profile: %v\n", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "User:  %s\n", p.UserName)
	if p.AboutMe != "" {
		fmt.Fprintf(a.out, "About: %s\n", p.AboutMe)
	}
	if len(p.Images) == 0 {
		return nil
	}

	fmt.Fprintf(a.out, "Images (%d):\n", len(p.Images))
	for i, img := range p.Images {
		if img.Description != "" {
			fmt.Fprintf(a.out, "  %d. %s  %s\n", i+1, img.URL, img.Description)
		} else {
			fmt.Fprintf(a.out, "  %d. %s\n", i+1, img.URL)
		}
	}
	return nil
}
