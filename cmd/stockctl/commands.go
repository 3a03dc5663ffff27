package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"go-stock-ledger/internal/config"
	"go-stock-ledger/internal/ledger"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/service"
	"go-stock-ledger/pkg/database"
	"go-stock-ledger/pkg/jwt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const operator = "stockctl"

type stores struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
}

func openStores(cfg config.Config) (stores, error) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return stores{}, err
	}
	if err := database.Migrate(db); err != nil {
		return stores{}, err
	}
	return stores{
		products: repository.NewProductRepo(db),
		sales:    repository.NewSaleRepo(db),
	}, nil
}

func sellCommand() *cli.Command {
	return &cli.Command{
		Name:  "sell",
		Usage: "record a sale and decrement stock",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "product", Usage: "product ID", Required: true},
			&cli.StringFlag{Name: "quantity", Aliases: []string{"q"}, Required: true},
			&cli.StringFlag{Name: "price", Usage: "unit price", Required: true},
			&cli.StringFlag{Name: "customer"},
			&cli.StringFlag{Name: "payment", Value: "cash"},
		},
		Action: func(c *cli.Context) error {
			req, err := ledger.ParseSaleRequest(c.String("product"), c.String("quantity"), c.String("price"))
			if err != nil {
				return err
			}
			req.CustomerName = c.String("customer")
			req.PaymentMethod = c.String("payment")
			req.Actor = operator

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			out, err := ledger.New(repository.NewLedgerStore(s.products, s.sales)).Record(c.Context, req)
			if ledger.IsPartial(err) {
				fmt.Fprintf(c.App.Writer, "WARNING: sale %s recorded but inventory was not decremented: %v\n", out.Sale.ID, err)
				return cli.Exit("", 2)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "sale %s committed: %s %d -> %d\n",
				out.Sale.ID, out.Product.SKU, out.PreviousQuantity, out.Product.Quantity)
			return nil
		},
	}
}

func alertsCommand() *cli.Command {
	return &cli.Command{
		Name:  "alerts",
		Usage: "list products below the low-stock threshold",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "threshold", Usage: "override LOW_STOCK_THRESHOLD"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			threshold := cfg.LowStockThreshold
			if c.IsSet("threshold") {
				threshold = c.Int("threshold")
			}

			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			products, err := s.products.FindLowStock(c.Context, threshold)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				fmt.Fprintln(c.App.Writer, "no low-stock products")
				return nil
			}

			w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SKU\tNAME\tCATEGORY\tQTY")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.SKU, p.Name, p.Category, p.Quantity)
			}
			return w.Flush()
		},
	}
}

func deleteSaleCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete-sale",
		Usage: "delete a sale record (stock is not restored)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Required: true},
		},
		Action: func(c *cli.Context) error {
			id, err := parseID(c.String("id"))
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			if err := s.sales.Delete(c.Context, id, operator); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "sale %s deleted\n", id)
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert the demo catalog into an empty database",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			s, err := openStores(cfg)
			if err != nil {
				return err
			}
			n, err := service.SeedDemo(c.Context, s.products, operator)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%d products created\n", n)
			return nil
		},
	}
}

func devTokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "dev-token",
		Usage: "mint a development bearer token signed with JWT_SECRET",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sub", Value: "dev-user"},
			&cli.StringFlag{Name: "email", Value: "dev@example.com"},
			&cli.StringFlag{Name: "name", Value: "Developer"},
			&cli.DurationFlag{Name: "ttl", Value: 24 * time.Hour},
		},
		Action: func(c *cli.Context) error {
			secret := os.Getenv("JWT_SECRET")
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			verifier := jwt.NewVerifier(secret, os.Getenv("JWT_ISSUER"))
			token, err := verifier.GenerateToken(c.String("sub"), c.String("email"), c.String("name"), c.Duration("ttl"))
			if err != nil {
				return errors.Wrap(err, "sign token")
			}
			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.Wrapf(err, "invalid id %q", raw)
	}
	return id, nil
}
