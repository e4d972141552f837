package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"coffee-marketplace-client/internal/api"
	"coffee-marketplace-client/internal/config"
	"coffee-marketplace-client/internal/models"
	"coffee-marketplace-client/internal/services"
	"coffee-marketplace-client/internal/storage"
)

// appContext wires the SDK pieces the commands share
type appContext struct {
	client    *api.Client
	sessions  *services.SessionStore
	cart      *services.CartSynchronizer
	dashboard *services.DashboardService
}

func main() {
	app := &cli.App{
		Name:  "coffeecart",
		Usage: "command-line client for the coffee marketplace",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
		},
		Commands: []*cli.Command{
			loginCommand(),
			logoutCommand(),
			signupCommand(),
			profileCommand(),
			productsCommand(),
			cartCommand(),
			ordersCommand(),
			paymentsCommand(),
			dashboardCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

// setup builds the shared app context from configuration
func setup(c *cli.Context) (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if c.Bool("verbose") {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	store, err := storage.NewLocalStore(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	return &appContext{
		client:    client,
		sessions:  services.NewSessionStore(store, client),
		cart:      services.NewCartSynchronizer(store, client),
		dashboard: services.NewDashboardService(client, client, client),
	}, nil
}

// requireSession restores the stored session or fails the command
func (a *appContext) requireSession() (*models.Session, error) {
	session, ok := a.sessions.Restore()
	if !ok {
		return nil, fmt.Errorf("not logged in; run `coffeecart login` first")
	}
	if session.Expired(time.Now()) {
		fmt.Println("note: your session has expired; requests may be rejected until you log in again")
	}
	return session, nil
}

// loadCart initializes the synchronizer for the current identity
func (a *appContext) loadCart(ctx context.Context) *models.Session {
	session, _ := a.sessions.Restore()
	a.cart.Load(ctx, session)
	return session
}

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and merge any guest cart into your account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Aliases: []string{"u"}, Required: true},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			app, err := setup(c)
			if err != nil {
				return err
			}

			// Start from the guest view so the login transition can
			// carry the guest cart across.
			app.cart.Load(c.Context, nil)

			session, err := app.sessions.Establish(c.Context, c.String("username"), c.String("password"))
			if err != nil {
				return err
			}
			app.cart.SetSession(c.Context, session)

			fmt.Printf("logged in as %s (%s)\n", session.User.Username, session.User.UserType)
			printCart(app.cart)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "sign out and discard the stored session",
		Action: func(c *cli.Context) error {
			app, err := setup(c)
			if err != nil {
				return err
			}
			if err := app.sessions.Clear(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func signupCommand() *cli.Command {
	return &cli.Command{
		Name:  "signup",
		Usage: "register a new customer or vendor account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "username", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "type", Value: string(models.RoleCustomer), Usage: "CUSTOMER or VENDOR"},
			&cli.StringFlag{Name: "phone"},
			&cli.StringFlag{Name: "address"},
			&cli.StringFlag{Name: "business-name"},
			&cli.StringFlag{Name: "business-description"},
			&cli.StringFlag{Name: "business-address"},
		},
		Action: func(c *cli.Context) error {
			app, err := setup(c)
			if err != nil {
				return err
			}

			session, err := app.sessions.SignUp(c.Context, &models.SignupRequest{
				Username:            c.String("username"),
				Email:               c.String("email"),
				Password:            c.String("password"),
				UserType:            models.UserRole(c.String("type")),
				PhoneNumber:         c.String("phone"),
				Address:             c.String("address"),
				BusinessName:        c.String("business-name"),
				BusinessDescription: c.String("business-description"),
				BusinessAddress:     c.String("business-address"),
			})
			if err != nil {
				return err
			}

			fmt.Printf("account created, logged in as %s\n", session.User.Username)
			return nil
		},
	}
}

func profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "show or update your profile",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "display the signed-in profile",
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					session, err := app.requireSession()
					if err != nil {
						return err
					}

					user, err := app.client.Profile(c.Context, session.Access)
					if err != nil {
						return err
					}
					printUser(user)
					return nil
				},
			},
			{
				Name:  "update",
				Usage: "update profile fields",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "address"},
				},
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					session, err := app.requireSession()
					if err != nil {
						return err
					}

					req := &models.ProfileUpdateRequest{
						Email:       c.String("email"),
						PhoneNumber: c.String("phone"),
						Address:     c.String("address"),
					}

					// Vendors update through the profile endpoint,
					// customers through update-user, mirroring the web UI.
					var user *models.User
					if session.User.IsVendor() {
						user, err = app.client.UpdateProfile(c.Context, session.Access, req)
					} else {
						user, err = app.client.UpdateUser(c.Context, session.Access, req)
					}
					if err != nil {
						return err
					}
					printUser(user)
					return nil
				},
			},
		},
	}
}

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "browse the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category"},
			&cli.StringFlag{Name: "vendor"},
			&cli.StringFlag{Name: "roast", Usage: "LIGHT, MEDIUM or DARK"},
		},
		Action: func(c *cli.Context) error {
			app, err := setup(c)
			if err != nil {
				return err
			}

			products, err := app.client.ListProducts(c.Context, models.ProductFilters{
				Category: c.String("category"),
				Vendor:   c.String("vendor"),
				Roast:    c.String("roast"),
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROAST\tORIGIN\tPRICE\tVENDOR")
			for i := range products {
				p := &products[i]
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\t%s\n", p.ID, p.Name, p.RoastType, p.Origin, float64(p.Price), p.Vendor)
			}
			return w.Flush()
		},
	}
}

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "manage the shopping cart",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "display the current cart",
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					app.loadCart(c.Context)
					printCart(app.cart)
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "add a product by id",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					productID, err := intArg(c, 0, "product-id")
					if err != nil {
						return err
					}

					product, err := app.client.GetProduct(c.Context, productID)
					if err != nil {
						return err
					}

					app.loadCart(c.Context)
					result, err := app.cart.AddItem(c.Context, models.CartItem{
						ProductID: product.ID,
						Name:      product.Name,
						Price:     product.Price,
						Image:     product.Image,
					})
					if err != nil {
						return err
					}
					reportCommit(result)
					printCart(app.cart)
					return nil
				},
			},
			{
				Name:      "remove",
				Usage:     "remove a product by id",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					productID, err := intArg(c, 0, "product-id")
					if err != nil {
						return err
					}

					app.loadCart(c.Context)
					result, err := app.cart.RemoveItem(c.Context, productID)
					if err != nil {
						return err
					}
					reportCommit(result)
					printCart(app.cart)
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "set the quantity of a product",
				ArgsUsage: "<product-id> <quantity>",
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					productID, err := intArg(c, 0, "product-id")
					if err != nil {
						return err
					}
					quantity, err := intArg(c, 1, "quantity")
					if err != nil {
						return err
					}

					app.loadCart(c.Context)
					result, err := app.cart.UpdateQuantity(c.Context, productID, quantity)
					if err != nil {
						return err
					}
					reportCommit(result)
					printCart(app.cart)
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "empty the cart",
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					app.loadCart(c.Context)
					result, err := app.cart.ClearCart(c.Context)
					if err != nil {
						return err
					}
					reportCommit(result)
					fmt.Println("cart cleared")
					return nil
				},
			},
		},
	}
}

func ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "list or cancel orders",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list your orders",
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					session, err := app.requireSession()
					if err != nil {
						return err
					}

					orders, err := app.client.ListOrders(c.Context, session.Access)
					if err != nil {
						return err
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tSTATUS\tTOTAL\tTRACKING\tPLACED")
					for i := range orders {
						o := &orders[i]
						fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\n", o.ID, o.Status, float64(o.TotalAmount), o.TrackingNumber, o.CreatedAt.Format("2006-01-02"))
					}
					return w.Flush()
				},
			},
			{
				Name:      "cancel",
				Usage:     "cancel an order by id",
				ArgsUsage: "<order-id>",
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					session, err := app.requireSession()
					if err != nil {
						return err
					}
					orderID, err := intArg(c, 0, "order-id")
					if err != nil {
						return err
					}

					if err := app.client.CancelOrder(c.Context, session.Access, orderID); err != nil {
						return err
					}
					fmt.Printf("order %d cancelled\n", orderID)
					return nil
				},
			},
		},
	}
}

func paymentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "payments",
		Usage: "list payments or request refunds",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list payments",
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					session, err := app.requireSession()
					if err != nil {
						return err
					}

					payments, err := app.client.ListPayments(c.Context, session.Access)
					if err != nil {
						return err
					}

					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tORDER\tAMOUNT\tMETHOD\tSTATUS")
					for i := range payments {
						p := &payments[i]
						fmt.Fprintf(w, "%d\t%d\t%.2f\t%s\t%s\n", p.ID, p.Order, float64(p.Amount), p.PaymentMethod, p.Status)
					}
					return w.Flush()
				},
			},
			{
				Name:      "initiate",
				Usage:     "start a mobile-money payment for an order",
				ArgsUsage: "<order-id> <amount>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "phone", Required: true, Usage: "mobile-money phone number"},
				},
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					session, err := app.requireSession()
					if err != nil {
						return err
					}
					orderID, err := intArg(c, 0, "order-id")
					if err != nil {
						return err
					}
					amount, err := intArg(c, 1, "amount")
					if err != nil {
						return err
					}

					payment, err := app.client.InitiatePayment(c.Context, session.Access, &models.PaymentInitiateRequest{
						OrderID:     orderID,
						Amount:      amount,
						PhoneNumber: c.String("phone"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("payment %d initiated (%s), confirm on your phone\n", payment.ID, payment.Status)
					return nil
				},
			},
			{
				Name:      "refund",
				Usage:     "request a refund for a payment",
				ArgsUsage: "<payment-id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "reason"},
				},
				Action: func(c *cli.Context) error {
					app, err := setup(c)
					if err != nil {
						return err
					}
					session, err := app.requireSession()
					if err != nil {
						return err
					}
					paymentID, err := intArg(c, 0, "payment-id")
					if err != nil {
						return err
					}

					refund, err := app.client.RefundPayment(c.Context, session.Access, paymentID, &models.RefundRequest{
						Reason: c.String("reason"),
					})
					if err != nil {
						return err
					}
					fmt.Printf("refund %d created (%s)\n", refund.ID, refund.Status)
					return nil
				},
			},
		},
	}
}

func dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "show the account dashboard",
		Action: func(c *cli.Context) error {
			app, err := setup(c)
			if err != nil {
				return err
			}
			session, err := app.requireSession()
			if err != nil {
				return err
			}

			overview, err := app.dashboard.Overview(c.Context, session)
			if err != nil {
				return err
			}

			printUser(overview.Profile)
			fmt.Printf("\norders: %d\n", len(overview.Orders))
			for i := range overview.Orders {
				o := &overview.Orders[i]
				fmt.Printf("  #%d %s %.2f\n", o.ID, o.Status, float64(o.TotalAmount))
			}
			if session.User.IsVendor() {
				fmt.Printf("\npayments: %d\n", len(overview.Payments))
				for i := range overview.Payments {
					p := &overview.Payments[i]
					fmt.Printf("  #%d %s %.2f (%s)\n", p.ID, p.PaymentMethod, float64(p.Amount), p.Status)
				}
			}
			return nil
		},
	}
}

// printCart renders the synchronizer's current state
func printCart(cart *services.CartSynchronizer) {
	items := cart.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tQTY\tPRICE\tSUBTOTAL")
	for i := range items {
		it := &items[i]
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%.2f\n", it.ProductID, it.Name, it.Quantity, float64(it.Price), it.Subtotal())
	}
	w.Flush()
	fmt.Printf("total: %.2f\n", cart.Total())
}

// reportCommit surfaces partial commit failures to the user
func reportCommit(result *services.CommitResult) {
	for _, failed := range result.Failed() {
		fmt.Printf("warning: %s for product %d did not reach the server: %v\n", failed.Op, failed.ProductID, failed.Err)
	}
}

// printUser renders a profile
func printUser(user *models.User) {
	fmt.Printf("%s <%s> (%s)\n", user.Username, user.Email, user.UserType)
	if user.PhoneNumber != "" {
		fmt.Printf("phone: %s\n", user.PhoneNumber)
	}
	if user.Address != "" {
		fmt.Printf("address: %s\n", user.Address)
	}
	if user.Vendor != nil {
		fmt.Printf("business: %s (verified: %v, rating: %.1f)\n", user.Vendor.BusinessName, user.Vendor.IsVerified, user.Vendor.Rating)
	}
}

// intArg parses a positional integer argument
func intArg(c *cli.Context, idx int, name string) (int, error) {
	raw := c.Args().Get(idx)
	if raw == "" {
		return 0, fmt.Errorf("missing required argument <%s>", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("argument <%s> must be a number", name)
	}
	return v, nil
}
