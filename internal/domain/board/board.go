// Package board builds the ledger view model: the client table, one summary
// list per company and the list of every sale and payment.
package board

import (
	"context"
	"fmt"
	"iter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"debtledger/internal/domain/client"
)

// Source is the read side of the client store.
type Source interface {
	ListAll(ctx context.Context) iter.Seq2[*client.Client, error]
	ListByCompany(ctx context.Context, company string) iter.Seq2[*client.Client, error]
	ListAllPayments(ctx context.Context) ([]client.Payment, error)
}

type Row struct {
	Name    string        `json:"name"`
	Debt    string        `json:"debt"`
	Status  client.Status `json:"status"`
	Company string        `json:"company"`
	Date    string        `json:"date"`
}

type Line struct {
	Text string `json:"text"`
	Paid bool   `json:"paid"`
}

// Group is the summary of one company.
type Group struct {
	Company     string `json:"company"`
	Lines       []Line `json:"lines"`
	Outstanding string `json:"outstanding"`
}

type PaymentLine struct {
	Client string `json:"client"`
	Amount string `json:"amount"`
	Date   string `json:"date"`
}

type Board struct {
	Rows     []Row         `json:"rows"`
	Groups   []Group       `json:"groups"`
	Sales    []string      `json:"sales"`
	Payments []PaymentLine `json:"payments"`
}

// Builder renders boards for a fixed set of companies.
type Builder struct {
	src       Source
	companies []string
	currency  string
}

func NewBuilder(src Source, companies []string, currency string) *Builder {
	return &Builder{src: src, companies: companies, currency: currency}
}

// Build reads the whole store once per section.
func (b *Builder) Build(ctx context.Context) (*Board, error) {
	out := &Board{
		Rows:     []Row{},
		Groups:   make([]Group, 0, len(b.companies)),
		Sales:    []string{},
		Payments: []PaymentLine{},
	}

	for c, err := range b.src.ListAll(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list clients: %w", err)
		}
		out.Rows = append(out.Rows, Row{Name: c.Name, Debt: c.Debt, Status: c.Status, Company: c.Company, Date: c.Date})
		out.Sales = append(out.Sales, fmt.Sprintf("%s - %s - %s", c.Name, c.Debt, c.Date))
	}

	for _, company := range b.companies {
		g, err := b.group(ctx, company)
		if err != nil {
			return nil, err
		}
		out.Groups = append(out.Groups, g)
	}

	payments, err := b.src.ListAllPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, PaymentLine{Client: p.ClientName, Amount: p.Amount, Date: p.Date})
	}

	return out, nil
}

func (b *Builder) group(ctx context.Context, company string) (Group, error) {
	g := Group{Company: company, Lines: []Line{}}
	total := decimal.Zero

	for c, err := range b.src.ListByCompany(ctx, company) {
		if err != nil {
			return Group{}, fmt.Errorf("list %s clients: %w", company, err)
		}
		g.Lines = append(g.Lines, Line{
			Text: fmt.Sprintf("%s owes %s (%s)", c.Name, c.Debt, c.Status),
			Paid: c.IsPaid(),
		})
		// non-numeric debts are shown but not summed
		if !c.IsPaid() {
			if d, err := client.ParseAmount(c.Debt); err == nil {
				total = total.Add(d)
			}
		}
	}

	g.Outstanding = FormatMoney(total, b.currency)
	return g, nil
}

// FormatMoney formats an amount in the currency's minor units, e.g. "C$60.00".
func FormatMoney(amount decimal.Decimal, currency string) string {
	m := money.New(0, currency)
	fraction := int32(m.Currency().Fraction)
	return m.Currency().Formatter().Format(amount.Shift(fraction).Round(0).IntPart())
}
