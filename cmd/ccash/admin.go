package main

import (
	"fmt"
	"strconv"

	"github.com/ccash-community/ccash-go/ccash"
	cli "github.com/urfave/cli/v2"
)

var adminFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "admin-name",
		Usage:    "admin account name for basic auth",
		Required: true,
		EnvVars:  []string{"CCASH_ADMIN_NAME"},
	},
	&cli.StringFlag{
		Name:     "admin-pass",
		Usage:    "admin account password for basic auth",
		Required: true,
		EnvVars:  []string{"CCASH_ADMIN_PASS"},
	},
}

func loadAdmin(cctx *cli.Context) *ccash.User {
	return ccash.NewUserUnchecked(cctx.String("admin-name"), cctx.String("admin-pass"))
}

var cmdAdmin = &cli.Command{
	Name:  "admin",
	Usage: "administrative operations (require the instance's admin account)",
	Subcommands: []*cli.Command{
		cmdAdminVerify,
		cmdAdminChangePassword,
		cmdAdminSetBalance,
		cmdAdminImpactBalance,
		cmdAdminAddUser,
		cmdAdminDeleteUser,
		cmdAdminPrune,
		cmdAdminShutdown,
	},
}

var cmdAdminVerify = &cli.Command{
	Name:  "verify",
	Usage: "check whether the credentials belong to the admin account",
	Flags: adminFlags,
	Action: func(cctx *cli.Context) error {
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		ok, err := ccash.AdminVerifyAccount(cctx.Context, session, loadAdmin(cctx))
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var cmdAdminChangePassword = &cli.Command{
	Name:      "change-password",
	Usage:     "change a user's password on their behalf",
	ArgsUsage: "<username> <new-password>",
	Flags:     adminFlags,
	Action: func(cctx *cli.Context) error {
		username := cctx.Args().Get(0)
		newPass := cctx.Args().Get(1)
		if username == "" || newPass == "" {
			return fmt.Errorf("expected username and new password arguments")
		}
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		target := ccash.NewUserUnchecked(username, "")
		ok, err := ccash.AdminChangePassword(cctx.Context, session, loadAdmin(cctx), target, newPass)
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var cmdAdminSetBalance = &cli.Command{
	Name:      "set-balance",
	Usage:     "set a user's balance",
	ArgsUsage: "<username> <amount>",
	Flags:     adminFlags,
	Action: func(cctx *cli.Context) error {
		username := cctx.Args().Get(0)
		amount, err := strconv.ParseUint(cctx.Args().Get(1), 10, 32)
		if username == "" || err != nil {
			return fmt.Errorf("expected username and amount arguments")
		}
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		return ccash.AdminSetBalance(cctx.Context, session, loadAdmin(cctx), username, uint32(amount))
	},
}

var cmdAdminImpactBalance = &cli.Command{
	Name:      "impact-balance",
	Usage:     "adjust a user's balance by a positive or negative amount",
	ArgsUsage: "<username> <amount>",
	Flags:     adminFlags,
	Action: func(cctx *cli.Context) error {
		username := cctx.Args().Get(0)
		amount, err := strconv.ParseInt(cctx.Args().Get(1), 10, 64)
		if username == "" || err != nil {
			return fmt.Errorf("expected username and amount arguments")
		}
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		return ccash.AdminImpactBalance(cctx.Context, session, loadAdmin(cctx), username, amount)
	},
}

var cmdAdminAddUser = &cli.Command{
	Name:      "add-user",
	Usage:     "register a user with a starting balance",
	ArgsUsage: "<username> <password> <amount>",
	Flags:     adminFlags,
	Action: func(cctx *cli.Context) error {
		amount, err := strconv.ParseUint(cctx.Args().Get(2), 10, 32)
		if err != nil {
			return fmt.Errorf("expected username, password and amount arguments")
		}
		newUser, err := ccash.NewUser(cctx.Args().Get(0), cctx.Args().Get(1))
		if err != nil {
			return err
		}
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		ok, err := ccash.AdminAddUser(cctx.Context, session, loadAdmin(cctx), newUser, uint32(amount))
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var cmdAdminDeleteUser = &cli.Command{
	Name:      "delete-user",
	Usage:     "delete a user's account",
	ArgsUsage: "<username>",
	Flags:     adminFlags,
	Action: func(cctx *cli.Context) error {
		username := cctx.Args().First()
		if username == "" {
			return fmt.Errorf("expected username argument")
		}
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		return ccash.AdminDeleteUser(cctx.Context, session, loadAdmin(cctx), username)
	},
}

var cmdAdminPrune = &cli.Command{
	Name:  "prune",
	Usage: "delete users below a balance threshold, printing how many were removed",
	Flags: append([]cli.Flag{
		&cli.UintFlag{
			Name:     "below",
			Usage:    "prune users holding less than this amount of CSH",
			Required: true,
		},
		&cli.Int64Flag{
			Name:  "older-than",
			Usage: "only prune users whose latest transaction predates this Unix time",
		},
	}, adminFlags...),
	Action: func(cctx *cli.Context) error {
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		var olderThan *int64
		if cctx.IsSet("older-than") {
			t := cctx.Int64("older-than")
			olderThan = &t
		}
		pruned, err := ccash.AdminPruneUsers(cctx.Context, session, loadAdmin(cctx), uint32(cctx.Uint("below")), olderThan)
		if err != nil {
			return err
		}
		fmt.Println(pruned)
		return nil
	},
}

var cmdAdminShutdown = &cli.Command{
	Name:  "shutdown",
	Usage: "save and shut down the CCash instance",
	Flags: adminFlags,
	Action: func(cctx *cli.Context) error {
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		return ccash.AdminClose(cctx.Context, session, loadAdmin(cctx))
	},
}
