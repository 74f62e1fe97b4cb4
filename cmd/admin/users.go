package main

import (
	"fmt"
	"strings"

	"microcourses/models"
	"microcourses/repositories"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// createAdmin updates or creates an Admin user.
func (cli *commandLine) createAdmin(email, name, pwd string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	hashed, err := bcrypt.GenerateFromPassword([]byte(pwd), cli.bcryptCost)
	if err != nil {
		return err
	}

	user, err := cli.userRepo.GetByEmail(email)
	switch {
	case err == nil:
		user.Role = models.RoleAdmin
		user.Password = string(hashed)
		if err := cli.userRepo.Update(user); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "user %s promoted to Admin\n", email)
		return nil
	case repositories.IsNotFound(err):
		user = &models.User{
			Name:                     strings.TrimSpace(name),
			Email:                    email,
			Password:                 string(hashed),
			Role:                     models.RoleAdmin,
			CreatorApplicationStatus: models.ApplicationNone,
		}
		if err := cli.userRepo.Create(user); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "admin %s created\n", email)
		return nil
	default:
		return err
	}
}

func (cli *commandLine) setRole(email string, role models.UserRole) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := cli.userRepo.GetByEmail(email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return errors.Errorf("no user with email %s", email)
		}
		return err
	}
	user.Role = role
	if err := cli.userRepo.Update(user); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "user %s is now %s\n", email, role)
	return nil
}
