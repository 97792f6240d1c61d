package main

import (
	"fmt"
	"time"

	"github.com/benjaminschreck/go-proposal/pkg/proposal"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	variant string
	client  string
	email   string
	phone   string
	country string
	date    string
	prices  map[string]int64
	team    map[string]int
	tools   []string
	dates   map[string]string
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one proposal",
		Example: `  proposal generate --variant "Make & CRM Automation" --client Acme \
    --country USA --phone +15550100 --price M-Price=10000 --price C-Price=2500 \
    --team P1=1 --team BD1=2 --tool Zapier --special VDate=30-04-2025`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := opts.form()
			if err != nil {
				return err
			}

			out, err := a.engine.Generate(cmd.Context(), proposal.Request{Variant: opts.variant, Form: form})
			if err != nil {
				return err
			}

			path, err := out.Save(a.engine.Config().OutputDir)
			if err != nil {
				return err
			}
			a.logger.Debug("saved proposal", zap.String("path", path))

			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Proposal written to %s", path))
			if out.RowsRemoved > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("Removed %d empty row(s)", out.RowsRemoved))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.variant, "variant", "", "Proposal variant (see \"proposal variants\")")
	f.StringVar(&opts.client, "client", "", "Client name")
	f.StringVar(&opts.email, "email", "", "Client email")
	f.StringVar(&opts.phone, "phone", "", "Client phone number, with country prefix")
	f.StringVar(&opts.country, "country", "", "Client country")
	f.StringVar(&opts.date, "date", "", "Proposal date, dd-mm-yyyy (default: today)")
	f.StringToInt64Var(&opts.prices, "price", nil, "Service price as KEY=AMOUNT, repeatable")
	f.StringToIntVar(&opts.team, "team", nil, "Team head count as ROLE=COUNT, repeatable")
	f.StringArrayVar(&opts.tools, "tool", nil, "Additional tool, repeatable")
	f.StringToStringVar(&opts.dates, "special", nil, "Special date as KEY=dd-mm-yyyy, repeatable")
	_ = cmd.MarkFlagRequired("variant")

	return cmd
}

func (o *generateOptions) form() (proposal.Form, error) {
	form := proposal.Form{
		ClientName:   o.client,
		ClientEmail:  o.email,
		ClientNumber: o.phone,
		Country:      o.country,
		Prices:       o.prices,
		Team:         o.team,
		Tools:        o.tools,
	}

	if o.date != "" {
		d, err := proposal.ParseDate(o.date)
		if err != nil {
			return form, fmt.Errorf("--date: %w", err)
		}
		form.Date = d
	}

	if len(o.dates) > 0 {
		form.SpecialDates = make(map[string]time.Time, len(o.dates))
		for key, value := range o.dates {
			d, err := proposal.ParseDate(value)
			if err != nil {
				return form, fmt.Errorf("--special %s: %w", key, err)
			}
			form.SpecialDates[key] = d
		}
	}
	return form, nil
}
