package commands

import (
	"fmt"
	"syscall"

	"knights/internal/client/display"

	"golang.org/x/term"
)

// readPassword is replaced in tests
var readPassword = func(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(bytePassword), nil
}

func (r *Registry) registerAuthCommands() {
	r.Register(&Command{
		Name:        "login",
		ShortName:   "l",
		Group:       groupAuth,
		Description: "Login as admin",
		Usage:       "login",
		Handler:     r.loginHandler,
	})

	r.Register(&Command{
		Name:        "logout",
		ShortName:   "o",
		Group:       groupAuth,
		Description: "Clear authentication",
		Usage:       "logout",
		Handler:     r.logoutHandler,
	})

	r.Register(&Command{
		Name:        "purge",
		Group:       groupAuth,
		Description: "Delete all recorded searches (admin)",
		Usage:       "purge",
		Handler:     r.purgeHandler,
	})
}

func (r *Registry) loginHandler(s Session, args []string) error {
	password, err := readPassword(display.Yellow + "Admin password: " + display.Reset)
	if err != nil {
		return err
	}

	resp, err := s.GetClient().Login(password)
	if err != nil {
		return err
	}

	s.SetAuthToken(resp.Token)
	r.printf("%sLogged in as admin%s\n", display.Green, display.Reset)
	r.printf("Token expires: %s\n", resp.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func (r *Registry) logoutHandler(s Session, args []string) error {
	s.SetAuthToken("")
	r.printf("%sLogged out%s\n", display.Green, display.Reset)
	return nil
}

func (r *Registry) purgeHandler(s Session, args []string) error {
	if s.GetAuthToken() == "" {
		return fmt.Errorf("not authenticated, use 'login'")
	}

	resp, err := s.GetClient().PurgeHistory()
	if err != nil {
		return err
	}

	r.printf("%sDeleted %d search(es)%s\n", display.Green, resp.Deleted, display.Reset)
	return nil
}
