package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strconv"

	"github.com/ido50/sqlqb"
	"github.com/ido50/sqlqb/internal/config"
	"github.com/ido50/sqlqb/internal/stmtfile"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newExecCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exec FILE",
		Short: "Execute the statements of a statement file, in order",
		Long: "Execute the statements of a statement file, in order, on the configured " +
			"database. Rows returned by SELECT statements are printed as YAML documents; " +
			"other statements print the number of rows they affected.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return err
			}

			logger, err := cfg.Logging.Logger(opts.stdout, opts.stderr)
			if err != nil {
				return err
			}

			stmts, err := stmtfile.ReadFile(args[0])
			if err != nil {
				return err
			}

			db, err := cfg.Connect(cmd.Context(), logger)
			if err != nil {
				return err
			}
			defer db.Close()

			return execStatements(cmd.Context(), db, logger, stmts, opts.stdout)
		},
	}
}

func execStatements(ctx context.Context, db *sqlqb.DB, logger logrus.FieldLogger, stmts []*stmtfile.Statement, w io.Writer) error {
	for i, stmt := range stmts {
		name := stmt.Name
		if name == "" {
			name = fmt.Sprintf("statement %d", i+1)
		}

		logger.WithField("statement", name).Info("executing")

		if err := execStatement(ctx, db, stmt, name, w); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func execStatement(ctx context.Context, db *sqlqb.DB, stmt *stmtfile.Statement, name string, w io.Writer) error {
	kind, err := stmt.StatementKind()
	if err != nil {
		return err
	}

	if kind == sqlqb.KindSelect {
		var rows []map[string]interface{}

		if stmt.IsPositional() {
			positional, err := stmt.Positional(db)
			if err != nil {
				return err
			}
			rows, err = positional.GetMaps(ctx)
			if err != nil {
				return err
			}
		} else {
			b, err := stmt.Builder(db.Builder())
			if err != nil {
				return err
			}
			rows, err = b.GetMaps(ctx)
			if err != nil {
				return err
			}
		}

		return writeRows(w, name, rows)
	}

	var res sql.Result

	if stmt.IsPositional() {
		positional, err := stmt.Positional(db)
		if err != nil {
			return err
		}
		if res, err = positional.Exec(ctx); err != nil {
			return err
		}
	} else {
		b, err := stmt.Builder(db.Builder())
		if err != nil {
			return err
		}
		if res, err = b.Commit(ctx); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(w, "# %s: %s, %s rows affected\n", name, kind, rowsAffected(res))
	return err
}

// rowsAffected formats the number of rows affected by a statement, or
// "unknown" when the driver can't tell
func rowsAffected(res sql.Result) string {
	n, err := res.RowsAffected()
	if err != nil {
		return "unknown"
	}
	return strconv.FormatInt(n, 10)
}

// writeRows prints rows as a YAML document. Drivers return text columns as
// []byte, which are printed as strings.
func writeRows(w io.Writer, name string, rows []map[string]interface{}) error {
	for _, row := range rows {
		for key, value := range row {
			if b, ok := value.([]byte); ok {
				row[key] = string(b)
			}
		}
	}

	if rows == nil {
		rows = []map[string]interface{}{}
	}

	if _, err := fmt.Fprintf(w, "# %s: %d rows\n", name, len(rows)); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}

	return enc.Close()
}
