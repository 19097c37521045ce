// ccash is a command-line client for a CCash ledger server, covering both
// the user-level and admin-level endpoints.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/ccash-community/ccash-go/ccash"
	"github.com/ccash-community/ccash-go/util"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(-1)
	}
}

var authFlags = []cli.Flag{
	&cli.StringFlag{
		Name:     "name",
		Usage:    "account name for basic auth",
		Required: true,
		EnvVars:  []string{"CCASH_NAME"},
	},
	&cli.StringFlag{
		Name:     "pass",
		Usage:    "account password for basic auth",
		Required: true,
		EnvVars:  []string{"CCASH_PASS"},
	},
}

func run(args []string) error {
	app := cli.App{
		Name:    "ccash",
		Usage:   "CCash ledger command-line client",
		Version: versioninfo.Short(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Usage:   "method, hostname, and port of the CCash instance",
				Value:   "http://localhost:8080",
				EnvVars: []string{"CCASH_HOST"},
			},
			&cli.BoolFlag{
				Name:  "retry",
				Usage: "retry failed requests at the transport level",
			},
			&cli.BoolFlag{
				Name:  "otel",
				Usage: "emit OpenTelemetry trace spans for outgoing requests",
			},
			&cli.BoolFlag{
				Name:  "lenient-errors",
				Usage: "report every endpoint error as false for yes/no operations",
			},
		},
	}
	app.Commands = []*cli.Command{
		cmdProperties,
		cmdBalance,
		cmdLog,
		cmdExists,
		cmdVerifyPassword,
		cmdChangePassword,
		cmdSend,
		cmdRegister,
		cmdDelete,
		cmdAdmin,
	}
	return app.Run(args)
}

func loadSession(cctx *cli.Context) (*ccash.Session, error) {
	session := ccash.NewSession(cctx.String("host"))
	switch {
	case cctx.Bool("otel"):
		session.Client = util.InstrumentedHTTPClient()
	case cctx.Bool("retry"):
		session.Client = util.RobustHTTPClient()
	}
	if cctx.Bool("lenient-errors") {
		session.ErrorPolicy = ccash.TreatErrorsAsFalse
	}
	if err := session.EstablishConnection(cctx.Context); err != nil {
		return nil, err
	}
	return session, nil
}

func loadUser(cctx *cli.Context) (*ccash.User, error) {
	return ccash.NewUser(cctx.String("name"), cctx.String("pass"))
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

var cmdProperties = &cli.Command{
	Name:  "properties",
	Usage: "print the properties reported by the CCash instance",
	Action: func(cctx *cli.Context) error {
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		return printJSON(session.Properties())
	},
}

var cmdBalance = &cli.Command{
	Name:  "balance",
	Usage: "print the account's balance",
	Flags: authFlags,
	Action: func(cctx *cli.Context) error {
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		user, err := loadUser(cctx)
		if err != nil {
			return err
		}
		balance, err := ccash.GetBalance(cctx.Context, session, user)
		if err != nil {
			return err
		}
		fmt.Println(balance)
		return nil
	},
}

var cmdLog = &cli.Command{
	Name:  "log",
	Usage: "print the account's transaction log",
	Flags: append([]cli.Flag{
		&cli.BoolFlag{
			Name:  "v1",
			Usage: "use the legacy v1 log schema (pre-v2 servers)",
		},
	}, authFlags...),
	Action: func(cctx *cli.Context) error {
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		user, err := loadUser(cctx)
		if err != nil {
			return err
		}
		if cctx.Bool("v1") {
			entries, err := ccash.GetLog(cctx.Context, session, user)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				fmt.Println(entry)
			}
			return nil
		}
		entries, err := ccash.GetLogV2(cctx.Context, session, user)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			fmt.Println(entry)
		}
		return nil
	},
}

var cmdExists = &cli.Command{
	Name:      "exists",
	Usage:     "check whether an account exists",
	ArgsUsage: "<username>",
	Flags:     authFlags,
	Action: func(cctx *cli.Context) error {
		username := cctx.Args().First()
		if username == "" {
			return fmt.Errorf("expected username argument")
		}
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		user, err := loadUser(cctx)
		if err != nil {
			return err
		}
		// existence is checked for the argument name, authenticated as
		// the flag-supplied account
		target := ccash.NewUserUnchecked(username, user.Password())
		exists, err := ccash.ContainsUser(cctx.Context, session, target)
		if err != nil {
			return err
		}
		fmt.Println(exists)
		return nil
	},
}

var cmdVerifyPassword = &cli.Command{
	Name:  "verify-password",
	Usage: "check whether the account's password is correct",
	Flags: authFlags,
	Action: func(cctx *cli.Context) error {
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		user, err := loadUser(cctx)
		if err != nil {
			return err
		}
		ok, err := ccash.VerifyPassword(cctx.Context, session, user)
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var cmdChangePassword = &cli.Command{
	Name:      "change-password",
	Usage:     "change the account's password",
	ArgsUsage: "<new-password>",
	Flags:     authFlags,
	Action: func(cctx *cli.Context) error {
		newPass := cctx.Args().First()
		if newPass == "" {
			return fmt.Errorf("expected new password argument")
		}
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		user, err := loadUser(cctx)
		if err != nil {
			return err
		}
		ok, err := ccash.ChangePassword(cctx.Context, session, user, newPass)
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var cmdSend = &cli.Command{
	Name:      "send",
	Usage:     "send funds to another account, printing the balance afterwards",
	ArgsUsage: "<recipient> <amount>",
	Flags:     authFlags,
	Action: func(cctx *cli.Context) error {
		recipient := cctx.Args().Get(0)
		amount, err := strconv.ParseUint(cctx.Args().Get(1), 10, 32)
		if recipient == "" || err != nil {
			return fmt.Errorf("expected recipient and amount arguments")
		}
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		user, err := loadUser(cctx)
		if err != nil {
			return err
		}
		balance, err := ccash.SendFunds(cctx.Context, session, user, recipient, uint32(amount))
		if err != nil {
			return err
		}
		fmt.Println(balance)
		return nil
	},
}

var cmdRegister = &cli.Command{
	Name:  "register",
	Usage: "register the account with a balance of 0",
	Flags: authFlags,
	Action: func(cctx *cli.Context) error {
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		user, err := loadUser(cctx)
		if err != nil {
			return err
		}
		ok, err := ccash.AddUser(cctx.Context, session, user)
		if err != nil {
			return err
		}
		fmt.Println(ok)
		return nil
	},
}

var cmdDelete = &cli.Command{
	Name:  "delete",
	Usage: "delete the account",
	Flags: authFlags,
	Action: func(cctx *cli.Context) error {
		session, err := loadSession(cctx)
		if err != nil {
			return err
		}
		user, err := loadUser(cctx)
		if err != nil {
			return err
		}
		return ccash.DeleteUser(cctx.Context, session, user)
	},
}
