// storectl inspecciona y mantiene el almacén local de la tienda usando la misma
// configuración que la API (STORAGE_DRIVER, SQLITE_PATH, APPS_SCRIPT_URL, ...).
//
//	storectl stats
//	storectl products [--json]
//	storectl users [--json]
//	storectl orders [--user <id>] [--json]
//	storectl reset --yes
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/oriflame-store/internal/bootstrap"
	"github.com/jhoicas/oriflame-store/internal/domain/entity"
	"github.com/jhoicas/oriflame-store/pkg/config"
	"github.com/jhoicas/oriflame-store/pkg/logger"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	asJSON   bool
	userID   string
	confirm  bool
	logLevel string
	timeout  time.Duration
}

func run(args []string, out io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("storectl", pflag.ContinueOnError)
	flagSet.BoolVar(&opts.asJSON, "json", false, "salida en JSON")
	flagSet.StringVar(&opts.userID, "user", "", "filtrar órdenes por id de usuario")
	flagSet.BoolVar(&opts.confirm, "yes", false, "confirmar operaciones destructivas (reset)")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "nivel de log (debug, info, warn, error)")
	flagSet.DurationVar(&opts.timeout, "timeout", 30*time.Second, "tiempo máximo de la operación")
	flagSet.BoolP("help", "h", false, "mostrar ayuda")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(out, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(out, flagSet)
		return nil
	}

	command := flagSet.Arg(0)
	if !knownCommand(command) {
		printHelp(out, flagSet)
		return fmt.Errorf("comando desconocido %q", command)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{
		Env:     "production",
		Level:   opts.logLevel,
		Service: "storectl",
		Out:     os.Stderr,
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	deps, err := bootstrap.New(ctx, cfg, log.Zerolog())
	if err != nil {
		return err
	}
	defer deps.Shutdown(context.Background())

	switch command {
	case "stats":
		return printStats(out, deps, opts)
	case "reset":
		if !opts.confirm {
			return errors.New("reset borra todos los datos locales; repetir con --yes")
		}
		st, err := deps.MaintenanceUC.Reset(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "almacén reiniciado: %d usuarios, %d productos, %d órdenes\n", st.Users, st.Products, st.Orders)
		return nil
	case "products":
		products, err := deps.ProductUC.List(ctx)
		if err != nil {
			return err
		}
		if opts.asJSON {
			return writeJSON(out, products)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOMBRE\tPRECIO\tCREADO")
		for _, p := range products {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), formatDate(p.CreatedAt))
		}
		return tw.Flush()
	case "users":
		users, err := deps.UserUC.List(ctx)
		if err != nil {
			return err
		}
		if opts.asJSON {
			return writeJSON(out, users)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tEMAIL\tROL\tCREADO")
		for _, u := range users {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, formatDate(u.CreatedAt))
		}
		return tw.Flush()
	default: // orders
		var orders []*entity.EnrichedOrder
		if opts.userID != "" {
			orders, err = deps.OrderUC.ListForUser(ctx, opts.userID)
		} else {
			orders, err = deps.OrderUC.ListAll(ctx)
		}
		if err != nil {
			return err
		}
		if opts.asJSON {
			return writeJSON(out, orders)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tUSUARIO\tPRODUCTO\tTOTAL\tESTADO\tFECHA")
		for _, o := range orders {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				o.ID, o.UserEmail, o.ProductName, o.Total.StringFixed(2), o.Status, formatDate(o.Date))
		}
		return tw.Flush()
	}
}

func knownCommand(name string) bool {
	switch name {
	case "stats", "reset", "products", "users", "orders":
		return true
	}
	return false
}

func printStats(out io.Writer, deps *bootstrap.Container, opts options) error {
	st := deps.MaintenanceUC.Stats()
	remote := deps.MaintenanceUC.RemoteStatus()
	if opts.asJSON {
		return writeJSON(out, map[string]any{"store": st, "remote": remote})
	}
	fmt.Fprintf(out, "usuarios:  %d\nproductos: %d\nórdenes:   %d\n", st.Users, st.Products, st.Orders)
	for table := range st.Dirty {
		fmt.Fprintf(out, "pendiente de volcado: %s\n", table)
	}
	if remote.Configured {
		fmt.Fprintf(out, "espejo remoto: %s\n", remote.Endpoint)
	} else {
		fmt.Fprintln(out, "espejo remoto: sin configurar (solo local)")
	}
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func printHelp(out io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintln(out, `Uso: storectl <comando> [flags]

Comandos:
  stats      conteos por tabla y estado del espejo remoto
  products   catálogo combinado (remoto + local)
  users      usuarios combinados (remoto + local)
  orders     órdenes enriquecidas, opcionalmente filtradas con --user
  reset      vacía el almacén local y vuelve a sembrar (requiere --yes)

Flags:`)
	fmt.Fprint(out, flagSet.FlagUsages())
}
