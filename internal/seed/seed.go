// Package seed registers basic demo data on the stock backend for manual
// testing: a few products, clients, payment forms and conditions.
package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"salesdesk/internal/backend"
)

type registrar interface {
	CreateProduct(ctx context.Context, in backend.CreateProductInput) error
	CreateClient(ctx context.Context, name, phone string) error
	CreatePaymentForm(ctx context.Context, name string) error
	CreatePaymentCondition(ctx context.Context, in backend.CreatePaymentConditionInput) error
}

// Apply posts the demo data. The backend assigns codes itself, so running
// seed twice creates duplicate records; it is meant for fresh instances.
func Apply(ctx context.Context, client registrar) error {
	products := []backend.CreateProductInput{
		{
			Name:      "Caderno 96 folhas",
			UnitKind:  "UN",
			Sector:    "Papelaria",
			Quantity:  120,
			UnitCost:  decimal.NewFromFloat(6.50),
			Margin:    decimal.NewFromFloat(50),
			SalePrice: decimal.NewFromFloat(9.75),
		},
		{
			Name:      "Caneta esferográfica azul",
			UnitKind:  "UN",
			Sector:    "Papelaria",
			Quantity:  400,
			UnitCost:  decimal.NewFromFloat(1.10),
			Margin:    decimal.NewFromFloat(80),
			SalePrice: decimal.NewFromFloat(1.98),
		},
		{
			Name:      "Mochila escolar",
			UnitKind:  "UN",
			Sector:    "Acessórios",
			Quantity:  35,
			UnitCost:  decimal.NewFromFloat(48.00),
			Margin:    decimal.NewFromFloat(60),
			SalePrice: decimal.NewFromFloat(76.80),
		},
	}
	for _, p := range products {
		if err := client.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("create product %q: %w", p.Name, err)
		}
	}

	clients := []struct{ name, phone string }{
		{"Maria da Silva", "11987650001"},
		{"João Pereira", "11987650002"},
	}
	for _, c := range clients {
		if err := client.CreateClient(ctx, c.name, c.phone); err != nil {
			return fmt.Errorf("create client %q: %w", c.name, err)
		}
	}

	forms := []string{"Dinheiro", "Cartão de crédito"}
	for _, f := range forms {
		if err := client.CreatePaymentForm(ctx, f); err != nil {
			return fmt.Errorf("create payment form %q: %w", f, err)
		}
	}

	// Conditions reference forms by code; a fresh backend assigns 1, 2, ...
	// in insertion order.
	conditions := []backend.CreatePaymentConditionInput{
		{PaymentFormCode: 1, InstallmentCount: 1, FirstInstallmentDays: 0, InstallmentInterval: 0, Description: "À vista"},
		{PaymentFormCode: 2, InstallmentCount: 3, FirstInstallmentDays: 30, InstallmentInterval: 30, Description: "3x sem juros"},
		{PaymentFormCode: 2, InstallmentCount: 6, FirstInstallmentDays: 30, InstallmentInterval: 30, Description: "6x sem juros"},
	}
	for _, cond := range conditions {
		if err := client.CreatePaymentCondition(ctx, cond); err != nil {
			return fmt.Errorf("create payment condition %q: %w", cond.Description, err)
		}
	}

	return nil
}
