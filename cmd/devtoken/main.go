// Command devtoken mints an access token for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/config"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/domain/user"
	"github.com/elmansy-mostafa/Salary-Calculation/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "dev-user", "user id claim")
	employeeID := flag.String("employee", "", "employee id claim (required for the employee role)")
	role := flag.String("role", string(user.RoleOwner), "owner, manager, employee or pending")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	r := user.Role(*role)
	if !r.Valid() {
		fmt.Fprintln(os.Stderr, user.ErrUnknownRole, *role)
		os.Exit(2)
	}
	if r == user.RoleEmployee && *employeeID == "" {
		fmt.Fprintln(os.Stderr, "-employee is required for the employee role")
		os.Exit(2)
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).
		GenerateAccessToken(*userID, *employeeID, r)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error generating token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires at", expiresAt)
}
