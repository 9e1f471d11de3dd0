// Command shop is the console storefront: it talks to the payment and order
// services and keeps its rendered state in sync through the frontend
// coordinator.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DarkRecklessness/ShopService/internal/client"
	"github.com/DarkRecklessness/ShopService/internal/config"
	"github.com/DarkRecklessness/ShopService/internal/frontend"
)

type consoleNotifier struct{}

func (consoleNotifier) Info(msg string) { fmt.Println(msg) }

func (consoleNotifier) Alert(msg string) { fmt.Println("[!]", msg) }

func main() {
	cfg := config.NewFrontend()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	view := frontend.NewView()
	coord := frontend.NewCoordinator(
		client.NewPaymentClient(cfg.PaymentBaseURL),
		client.NewOrderClient(cfg.OrderBaseURL),
		view,
		consoleNotifier{},
		cfg.StatusDelay,
		logger,
	)

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println()
		fmt.Println("1) create account  2) top up  3) balance  4) create order  5) order history  6) redraw  0) quit")
		choice := prompt(in, "> ")

		switch choice {
		case "1":
			coord.CreateAccount(ctx, prompt(in, "user id: "))
		case "2":
			coord.TopUp(ctx, prompt(in, "user id: "), prompt(in, "amount: "))
			renderBalance(view)
		case "3":
			view.SetBalanceUser(prompt(in, "user id: "))
			coord.RefreshBalance(ctx)
			renderBalance(view)
		case "4":
			check := coord.SubmitOrder(ctx,
				prompt(in, "user id: "),
				prompt(in, "amount: "),
				prompt(in, "description: "),
			)
			renderPanel(view)
			if check != nil {
				// Wait for the deferred status check so the terminal
				// status shows up without a manual redraw.
				<-check.Done()
				renderPanel(view)
				renderHistory(view)
			}
		case "5":
			view.SetHistoryUser(prompt(in, "user id: "))
			coord.RefreshHistory(ctx)
			renderHistory(view)
		case "6":
			renderBalance(view)
			renderPanel(view)
			renderHistory(view)
		case "0", "q", "":
			return
		}
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func renderBalance(view *frontend.View) {
	if text := view.BalanceText(); text != "" {
		fmt.Printf("balance[%s]: %s\n", view.BalanceUser(), text)
	}
}

func renderPanel(view *frontend.View) {
	panel := view.Panel()
	if !panel.Visible {
		return
	}
	fmt.Printf("order #%d  status: %s (%s)\n", panel.OrderID, panel.Status, panel.Style)
}

func renderHistory(view *frontend.View) {
	h := view.History()
	switch {
	case h.Loading:
		fmt.Println("loading...")
	case h.Err != "":
		fmt.Println("history error:", h.Err)
	case h.Empty:
		fmt.Println("no orders")
	default:
		for _, row := range h.Rows {
			fmt.Printf("#%d\t%s\t%d\t%s (%s)\n", row.ID, row.Description, row.Amount, row.Status, row.Style)
		}
	}
}
