package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	fluentdb "github.com/biyonik/go-fluent-db"
)

func newSelectCmd(o *globalOptions) *cobra.Command {
	var (
		columns []string
		where   []string
		orderBy string
		desc    bool
		first   bool
	)

	cmd := &cobra.Command{
		Use:   "select TABLE",
		Short: "Select rows from a table",
		Long: `Select rows from TABLE. Conditions are joined with AND and every value is
bound as a named parameter.

A condition is "column=value" for equality, or "column=<operator> <value>" with
one of =, !=, <>, <, >, <=, >=.`,
		Example: `  fluentdb select users --columns id,name --where "age=>= 18" --order-by name
  fluentdb select posts --where author=ahmet --first -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := o.outputFormat()
			if err != nil {
				return err
			}
			conds, err := parseConds(where)
			if err != nil {
				return err
			}

			db, err := o.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			b := db.Select(args[0], columns...).Where(conds...)
			if orderBy != "" {
				if desc {
					b.OrderByDesc(orderBy)
				} else {
					b.OrderBy(orderBy)
				}
			}
			return fetch(cmd, b, format, first)
		},
	}

	cmd.Flags().StringSliceVarP(&columns, "columns", "c", nil, "Columns to select (default *)")
	cmd.Flags().StringArrayVarP(&where, "where", "w", nil, `Condition "column=value" or "column=<op> <value>" (repeatable)`)
	cmd.Flags().StringVar(&orderBy, "order-by", "", "Column to order by")
	cmd.Flags().BoolVar(&desc, "desc", false, "Order descending")
	cmd.Flags().BoolVar(&first, "first", false, "Print only the first row")
	return cmd
}

func newQueryCmd(o *globalOptions) *cobra.Command {
	var (
		params []string
		first  bool
	)

	cmd := &cobra.Command{
		Use:     "query SQL",
		Short:   "Run a raw SELECT with named parameters",
		Example: `  fluentdb query "SELECT * FROM posts WHERE slug = :slug" -p slug=hello --first`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := o.outputFormat()
			if err != nil {
				return err
			}
			p, err := parseParams(params)
			if err != nil {
				return err
			}

			db, err := o.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			return fetch(cmd, db.Query(args[0], p), format, first)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, `Parameter "name=value" (repeatable)`)
	cmd.Flags().BoolVar(&first, "first", false, "Print only the first row")
	return cmd
}

func newExecCmd(o *globalOptions) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:     "exec SQL",
		Short:   "Run a statement that returns no rows",
		Example: `  fluentdb exec "UPDATE posts SET status = :status WHERE id = :id" -p status=draft -p id=3`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := o.outputFormat()
			if err != nil {
				return err
			}
			p, err := parseParams(params)
			if err != nil {
				return err
			}

			db, err := o.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Exec(cmd.Context(), args[0], p)
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), format, map[string]int64{"affected": n})
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, `Parameter "name=value" (repeatable)`)
	return cmd
}

// insertResult is printed by the insert command.
type insertResult struct {
	Inserted bool                  `json:"inserted" yaml:"inserted"`
	Error    *fluentdb.ErrorDetail `json:"error,omitempty" yaml:"error,omitempty"`
}

func newInsertCmd(o *globalOptions) *cobra.Command {
	var detail bool

	cmd := &cobra.Command{
		Use:   "insert TABLE column=value...",
		Short: "Insert one row",
		Long: `Insert one row into TABLE. With --detail a driver failure is printed as
SQLSTATE, code and message instead of failing the command.`,
		Example: `  fluentdb insert users name=Bob email=bob@example.com --detail`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := o.outputFormat()
			if err != nil {
				return err
			}
			p, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			db, err := o.connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			var res insertResult
			if detail {
				res.Inserted, res.Error, err = db.Builder().InsertDetailedContext(cmd.Context(), args[0], p)
			} else {
				res.Inserted, err = db.Insert(cmd.Context(), args[0], p)
			}
			if err != nil {
				return err
			}
			return writeValue(cmd.OutOrStdout(), format, res)
		},
	}

	cmd.Flags().BoolVar(&detail, "detail", false, "Print driver error detail instead of failing")
	return cmd
}

// profileView is the config command output. The password is never printed.
type profileView struct {
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`
	Driver      string `json:"driver" yaml:"driver"`
	Host        string `json:"host,omitempty" yaml:"host,omitempty"`
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	Database    string `json:"database" yaml:"database"`
	Username    string `json:"username,omitempty" yaml:"username,omitempty"`
	Password    string `json:"password,omitempty" yaml:"password,omitempty"`
	Charset     string `json:"charset,omitempty" yaml:"charset,omitempty"`
	TLS         bool   `json:"tls" yaml:"tls"`
}

func newConfigCmd(o *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved connection profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := o.outputFormat()
			if err != nil {
				return err
			}
			cfg, err := o.connectionConfig()
			if err != nil {
				return err
			}
			if _, err := cfg.Profile(); err != nil {
				return err
			}

			view := profileView{
				Environment: o.env,
				Driver:      cfg.Driver,
				Host:        cfg.Host,
				Port:        cfg.Port,
				Database:    cfg.Database,
				Username:    cfg.Username,
				Charset:     cfg.Charset,
				TLS:         cfg.TLS,
			}
			if cfg.Password != "" {
				view.Password = "********"
			}
			return writeValue(cmd.OutOrStdout(), format, view)
		},
	}
}

// fetch runs b and prints the first row or all rows.
func fetch(cmd *cobra.Command, b *fluentdb.StatementBuilder, format OutputFormat, first bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if first {
		row, ok, err := b.GetFirstContext(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return writeValue(cmd.OutOrStdout(), format, nil)
		}
		return writeRow(cmd.OutOrStdout(), format, row)
	}

	rows, err := b.GetAllContext(ctx)
	if err != nil {
		return err
	}
	return writeRows(cmd.OutOrStdout(), format, rows)
}

// parseConds turns "column=value" flags into conditions, keeping their order.
func parseConds(raw []string) ([]fluentdb.Cond, error) {
	conds := make([]fluentdb.Cond, 0, len(raw))
	for _, r := range raw {
		col, val, err := splitPair(r)
		if err != nil {
			return nil, fmt.Errorf("invalid --where %q: %w", r, err)
		}
		conds = append(conds, fluentdb.Cond{Column: col, Value: val})
	}
	return conds, nil
}

// parseParams turns "name=value" arguments into Params.
func parseParams(raw []string) (fluentdb.Params, error) {
	p := make(fluentdb.Params, len(raw))
	for _, r := range raw {
		name, val, err := splitPair(r)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter %q: %w", r, err)
		}
		p[name] = val
	}
	return p, nil
}

func splitPair(s string) (string, string, error) {
	name, val, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", errors.New(`expected "name=value"`)
	}
	return name, val, nil
}
