package main

import (
	"flag"
	"fmt"
	"io"
	"syscall"

	"microcourses/config"
	"microcourses/models"
	"microcourses/repositories"

	"github.com/pkg/errors"
	"golang.org/x/term"
	"gorm.io/gorm"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db         *gorm.DB
	userRepo   repositories.UserRepository
	bcryptCost int
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate                                  - create or update tables and indexes")
	fmt.Fprintln(cli.out, "  createadmin -email EMAIL -name NAME      - create an admin or promote an existing user (password prompted)")
	fmt.Fprintln(cli.out, "  setrole -email EMAIL -role ROLE          - change a user's role (Learner, Creator, Admin)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	createAdminCmd := flag.NewFlagSet("createadmin", flag.ContinueOnError)
	createAdminCmd.SetOutput(cli.out)
	createAdminEmail := createAdminCmd.String("email", "", "The admin's email.")
	createAdminName := createAdminCmd.String("name", "Admin", "The admin's display name.")
	createAdminPwd := createAdminCmd.String("password", "", "The password; prompted when omitted.")

	setRoleCmd := flag.NewFlagSet("setrole", flag.ContinueOnError)
	setRoleCmd.SetOutput(cli.out)
	setRoleEmail := setRoleCmd.String("email", "", "The user's email.")
	setRoleRole := setRoleCmd.String("role", "", "The new role: Learner, Creator or Admin.")

	switch args[1] {
	case "migrate":
		if err := config.Migrate(cli.db); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "migrations applied")
		return nil

	case "createadmin":
		if err := createAdminCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *createAdminEmail == "" {
			createAdminCmd.Usage()
			return errHelp
		}
		pwd := *createAdminPwd
		if pwd == "" {
			fmt.Fprint(cli.out, "Enter password:")
			b, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Fprintln(cli.out)
			if err != nil {
				return err
			}
			pwd = string(b)
		}
		if len(pwd) < 6 {
			return errors.New("password must be at least 6 characters")
		}
		return cli.createAdmin(*createAdminEmail, *createAdminName, pwd)

	case "setrole":
		if err := setRoleCmd.Parse(args[2:]); err != nil {
			return err
		}
		role := models.UserRole(*setRoleRole)
		if *setRoleEmail == "" || !role.Valid() {
			setRoleCmd.Usage()
			return errHelp
		}
		return cli.setRole(*setRoleEmail, role)

	default:
		cli.printUsage()
		return errHelp
	}
}
